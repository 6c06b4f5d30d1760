package webhookauth

import "errors"

// Sentinel errors returned by construction, Sign and Check.
var (
	// ErrNoSecret is returned when an Auth is created without a secret.
	ErrNoSecret = errors.New("webhookauth: secret is required")

	// ErrInvalidTTL is returned for a negative TTL or one shorter than a second.
	ErrInvalidTTL = errors.New("webhookauth: ttl must be a whole number of seconds")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("webhookauth: invalid config")

	// ErrUnsupportedAlgorithm is returned when a digest algorithm is unknown
	// or not in the allowed set.
	ErrUnsupportedAlgorithm = errors.New("webhookauth: unsupported digest algorithm")

	// ErrPayloadEncoding is returned when a payload cannot be serialized.
	ErrPayloadEncoding = errors.New("webhookauth: payload cannot be encoded")

	// ErrPayloadInvalid is returned when a payload fails schema validation.
	ErrPayloadInvalid = errors.New("webhookauth: payload failed schema validation")

	// ErrExpired is returned when an envelope is older than the TTL.
	ErrExpired = errors.New("webhookauth: envelope expired")

	// ErrSignatureMismatch is returned when the recomputed digest differs
	// from the envelope signature.
	ErrSignatureMismatch = errors.New("webhookauth: signature mismatch")
)
