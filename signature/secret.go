package signature

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// SecretPrefix marks secrets produced by GenerateSecret.
const SecretPrefix = "whsec_"

const secretEntropy = 32

// GenerateSecret creates a random signing secret suitable for issuing to a
// single client: SecretPrefix followed by 64 lowercase hex characters.
func GenerateSecret() string {
	b := make([]byte, secretEntropy)
	if _, err := rand.Read(b); err != nil {
		panic("webhookauth: read random secret: " + err.Error())
	}
	return SecretPrefix + hex.EncodeToString(b)
}

// IsGeneratedSecret reports whether s has the shape GenerateSecret produces.
func IsGeneratedSecret(s string) bool {
	rest, ok := strings.CutPrefix(s, SecretPrefix)
	if !ok || len(rest) != 2*secretEntropy {
		return false
	}
	for _, c := range rest {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
