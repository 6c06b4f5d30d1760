// Package signature computes and compares the keyed digests carried by
// signed envelopes.
package signature

import (
	"crypto/hmac"
	"encoding/hex"
	"hash"
	"strconv"
)

// Compute returns the lowercase hex HMAC over payload followed by the
// decimal form of iat. The two parts are written to the MAC in that order
// with no separator.
func Compute(newHash func() hash.Hash, secret string, payload []byte, iat int64) string {
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)
	mac.Write(strconv.AppendInt(nil, iat, 10))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is the digest Compute would produce for the
// same inputs.
func Verify(newHash func() hash.Hash, secret string, payload []byte, iat int64, sig string) bool {
	return Equal(Compute(newHash, secret, payload, iat), sig)
}

// Equal compares two signatures in constant time. Strings of different
// length are unequal.
func Equal(expected, actual string) bool {
	return hmac.Equal([]byte(expected), []byte(actual))
}
