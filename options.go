package webhookauth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/webhookauth/algorithm"
	"github.com/xraph/webhookauth/internal/schema"
	"github.com/xraph/webhookauth/observability"
)

// Option configures an Auth instance.
type Option func(*Auth) error

// WithConfig applies every field set in cfg.
func WithConfig(cfg Config) Option {
	return func(a *Auth) error {
		for _, opt := range cfg.ToOptions() {
			if err := opt(a); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithSecret sets the shared secret. It is required.
func WithSecret(secret string) Option {
	return func(a *Auth) error {
		a.config.Secret = secret
		return nil
	}
}

// WithAlgorithm sets the digest algorithm used for signing and for
// envelopes that do not record one.
func WithAlgorithm(alg algorithm.Algorithm) Option {
	return func(a *Auth) error {
		if !algorithm.IsSupported(alg) {
			return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(alg))
		}
		a.config.Algorithm = alg
		return nil
	}
}

// WithTTL sets the maximum envelope age. Zero selects DefaultTTL. Positive
// durations under a second are rejected, longer ones truncated to seconds.
func WithTTL(d time.Duration) Option {
	return func(a *Auth) error {
		if d < 0 || (d > 0 && d < time.Second) {
			return fmt.Errorf("%w: %s", ErrInvalidTTL, d)
		}
		a.config.TTL = int64(d / time.Second)
		return nil
	}
}

// WithAllowedAlgorithms restricts the recorded algorithms verification
// accepts. The configured signing algorithm must be among them.
func WithAllowedAlgorithms(algs ...algorithm.Algorithm) Option {
	return func(a *Auth) error {
		allowed := make(map[algorithm.Algorithm]struct{}, len(algs))
		for _, alg := range algs {
			if !algorithm.IsSupported(alg) {
				return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(alg))
			}
			allowed[alg] = struct{}{}
		}
		a.config.AllowedAlgorithms = algs
		a.allowed = allowed
		return nil
	}
}

// WithSchema validates every signed and verified payload against a JSON
// Schema. schema may be raw JSON or a value that marshals to one.
func WithSchema(s any) Option {
	return func(a *Auth) error {
		v, err := schema.Compile(s)
		if err != nil {
			return fmt.Errorf("webhookauth: %w", err)
		}
		a.schema = v
		return nil
	}
}

// WithClock sets the time source. Only whole seconds are used.
func WithClock(now func() time.Time) Option {
	return func(a *Auth) error {
		a.now = now
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auth) error {
		a.logger = logger
		return nil
	}
}

// WithMetrics records sign and verify counts.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Auth) error {
		a.metrics = m
		return nil
	}
}

// WithTracer emits a span per SignContext and Check call.
func WithTracer(t *observability.Tracer) Option {
	return func(a *Auth) error {
		a.tracer = t
		return nil
	}
}

// SignOption overrides signing parameters for a single call.
type SignOption func(*signParams)

type signParams struct {
	secret string
	alg    algorithm.Algorithm
}

// SignWithSecret signs with secret instead of the configured one, for
// issuing client-specific signatures. An empty secret is ignored. There is
// no verification counterpart: verification always uses the configured
// secret.
func SignWithSecret(secret string) SignOption {
	return func(p *signParams) {
		if secret != "" {
			p.secret = secret
		}
	}
}

// SignWithAlgorithm signs with alg instead of the configured algorithm. The
// choice is recorded in the envelope.
func SignWithAlgorithm(alg algorithm.Algorithm) SignOption {
	return func(p *signParams) {
		if alg != "" {
			p.alg = alg
		}
	}
}
