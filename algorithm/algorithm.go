// Package algorithm enumerates the message digest algorithms an envelope may
// be signed with.
//
// Identifiers follow the OpenSSL naming used by most HMAC implementations
// (e.g. "sha256", "sha3-256", "blake2b512"), so envelopes signed by other
// stacks with the same identifier verify here and vice versa.
package algorithm

import (
	"crypto/md5"  //nolint:gosec // selectable legacy digest, HMAC-MD5 is still unforgeable without the key
	"crypto/sha1" //nolint:gosec // selectable legacy digest
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"slices"
	"sync"

	"github.com/jzelinskie/whirlpool"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"       //nolint:staticcheck // selectable legacy digest
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // selectable legacy digest
	"golang.org/x/crypto/sha3"
)

// Algorithm identifies a digest algorithm, e.g. "sha256".
type Algorithm string

// Supported algorithm identifiers.
const (
	MD4        Algorithm = "md4"
	MD5        Algorithm = "md5"
	RIPEMD160  Algorithm = "ripemd160"
	SHA1       Algorithm = "sha1"
	SHA224     Algorithm = "sha224"
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA512_224 Algorithm = "sha512-224"
	SHA512_256 Algorithm = "sha512-256"
	SHA3_224   Algorithm = "sha3-224"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_384   Algorithm = "sha3-384"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b512 Algorithm = "blake2b512"
	BLAKE2s256 Algorithm = "blake2s256"
	Whirlpool  Algorithm = "whirlpool"
)

// Default is the algorithm used when none is configured.
const Default = SHA256

// ErrUnsupported is returned for identifiers with no registered hash.
var ErrUnsupported = errors.New("algorithm: unsupported digest algorithm")

var (
	mu       sync.RWMutex
	registry = map[Algorithm]func() hash.Hash{
		MD4:        md4.New,
		MD5:        md5.New,
		RIPEMD160:  ripemd160.New,
		SHA1:       sha1.New,
		SHA224:     sha256.New224,
		SHA256:     sha256.New,
		SHA384:     sha512.New384,
		SHA512:     sha512.New,
		SHA512_224: sha512.New512_224,
		SHA512_256: sha512.New512_256,
		SHA3_224:   sha3.New224,
		SHA3_256:   sha3.New256,
		SHA3_384:   sha3.New384,
		SHA3_512:   sha3.New512,
		BLAKE2b512: unkeyed(blake2b.New512),
		BLAKE2s256: unkeyed(blake2s.New256),
		Whirlpool:  whirlpool.New,
	}
)

// unkeyed adapts a BLAKE2 constructor to the func() hash.Hash shape HMAC
// expects. A nil key never fails.
func unkeyed(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(fmt.Sprintf("algorithm: unkeyed blake2: %v", err))
		}
		return h
	}
}

// Register adds or replaces the hash constructor for an identifier.
// It is intended for init-time use, e.g. to plug in a GOST implementation.
func Register(alg Algorithm, fn func() hash.Hash) {
	if alg == "" || fn == nil {
		panic("algorithm: Register requires an identifier and a constructor")
	}
	mu.Lock()
	defer mu.Unlock()
	registry[alg] = fn
}

// Lookup returns the hash constructor registered for alg.
func Lookup(alg Algorithm) (func() hash.Hash, error) {
	mu.RLock()
	fn, ok := registry[alg]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, string(alg))
	}
	return fn, nil
}

// Parse converts s into a supported Algorithm.
func Parse(s string) (Algorithm, error) {
	alg := Algorithm(s)
	if _, err := Lookup(alg); err != nil {
		return "", err
	}
	return alg, nil
}

// IsSupported reports whether alg has a registered hash.
func IsSupported(alg Algorithm) bool {
	_, err := Lookup(alg)
	return err == nil
}

// Supported returns every registered identifier in lexical order.
func Supported() []Algorithm {
	mu.RLock()
	out := make([]Algorithm, 0, len(registry))
	for alg := range registry {
		out = append(out, alg)
	}
	mu.RUnlock()
	slices.Sort(out)
	return out
}

// String implements fmt.Stringer.
func (a Algorithm) String() string { return string(a) }
