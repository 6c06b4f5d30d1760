package webhookauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/webhookauth/algorithm"
	"github.com/xraph/webhookauth/canonical"
	"github.com/xraph/webhookauth/internal/schema"
	"github.com/xraph/webhookauth/observability"
	"github.com/xraph/webhookauth/signature"
)

// Auth signs payloads and verifies envelopes under one configuration.
// It is immutable after New and safe for concurrent use.
type Auth struct {
	config  Config
	allowed map[algorithm.Algorithm]struct{}
	schema  *schema.Validator
	now     func() time.Time
	logger  *slog.Logger
	metrics *observability.Metrics
	tracer  *observability.Tracer
}

// New creates an Auth with the given options. WithSecret is required.
func New(opts ...Option) (*Auth, error) {
	a := &Auth{
		config: DefaultConfig(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.config.Secret == "" {
		return nil, ErrNoSecret
	}
	if a.config.TTL == 0 {
		a.config.TTL = int64(DefaultTTL / time.Second)
	}
	if a.allowed != nil && !a.accepts(a.config.Algorithm) {
		return nil, fmt.Errorf("%w: %q is not in the allowed algorithms", ErrUnsupportedAlgorithm, string(a.config.Algorithm))
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a, nil
}

// Algorithm returns the configured digest algorithm.
func (a *Auth) Algorithm() algorithm.Algorithm {
	return a.config.Algorithm
}

// TTL returns the maximum accepted envelope age.
func (a *Auth) TTL() time.Duration {
	return time.Duration(a.config.TTL) * time.Second
}

// Sign is SignContext with a background context.
func Sign[T any](a *Auth, payload T, opts ...SignOption) (*Envelope[T], error) {
	return SignContext(context.Background(), a, payload, opts...)
}

// SignContext wraps payload in an envelope signed at the current second.
//
// The signature is the HMAC, under the effective secret and algorithm, of
// the canonical payload encoding followed by the decimal issued-at second.
// Options may override the secret or algorithm for this call only.
func SignContext[T any](ctx context.Context, a *Auth, payload T, opts ...SignOption) (*Envelope[T], error) {
	p := signParams{secret: a.config.Secret, alg: a.config.Algorithm}
	for _, opt := range opts {
		opt(&p)
	}

	sig, iat, err := a.sign(ctx, payload, p)
	if err != nil {
		return nil, err
	}

	return &Envelope[T]{
		Data: payload,
		Sig:  sig,
		Alg:  p.alg,
		Iat:  iat,
	}, nil
}

// Sign is the non-generic form of Sign for callers holding an untyped payload.
func (a *Auth) Sign(payload any, opts ...SignOption) (*Envelope[any], error) {
	return Sign(a, payload, opts...)
}

func (a *Auth) sign(ctx context.Context, payload any, p signParams) (sig string, iat int64, err error) {
	iat = a.now().Unix()

	var span trace.Span
	if a.tracer != nil {
		ctx, span = a.tracer.StartSignSpan(ctx, string(p.alg))
		defer func() { a.tracer.EndSpan(span, resultOf(err), err) }()
	}

	newHash, err := algorithm.Lookup(p.alg)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(p.alg))
	}

	body, err := canonical.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrPayloadEncoding, err)
	}

	if a.schema != nil {
		if vErr := a.schema.Validate(body); vErr != nil {
			return "", 0, fmt.Errorf("%w: %w", ErrPayloadInvalid, vErr)
		}
	}

	sig = signature.Compute(newHash, p.secret, body, iat)

	if a.metrics != nil {
		a.metrics.RecordSign(string(p.alg))
	}

	a.logger.DebugContext(ctx, "payload signed",
		"alg", p.alg,
		"iat", iat,
		"override_secret", p.secret != a.config.Secret,
	)

	return sig, iat, nil
}

// Verify reports whether env is fresh and carries a valid signature under
// the configured secret. Every failure reads as false; use Check for the
// reason.
func (a *Auth) Verify(env Signed) bool {
	return a.Check(context.Background(), env) == nil
}

// Check validates env and returns nil if it is accepted.
//
// The critical path:
//  1. Reject envelopes older than the TTL without computing a digest. An
//     envelope exactly TTL seconds old is accepted, and there is no lower
//     bound on future timestamps.
//  2. Resolve the recorded algorithm, or the configured one if none.
//  3. Recompute the digest with the configured secret and compare in
//     constant time.
//  4. Validate the payload against the schema, if one is configured.
//
// Rejections wrap ErrExpired, ErrUnsupportedAlgorithm, ErrSignatureMismatch
// or ErrPayloadInvalid. A payload that cannot be serialized wraps
// ErrPayloadEncoding.
func (a *Auth) Check(ctx context.Context, env Signed) (err error) {
	if isNil(env) {
		return fmt.Errorf("%w: nil envelope", ErrSignatureMismatch)
	}
	data, sig, alg, iat := env.fields()
	if alg == "" {
		alg = a.config.Algorithm
	}

	var span trace.Span
	if a.tracer != nil {
		ctx, span = a.tracer.StartVerifySpan(ctx, string(alg), iat)
	}
	defer func() { a.recordCheck(ctx, span, alg, iat, err) }()

	// 1. Freshness. Compared as iat < now-ttl so that an extreme iat
	// cannot overflow into a negative age.
	if oldest := a.now().Unix() - a.config.TTL; iat < oldest {
		return fmt.Errorf("%w: issued at %d, oldest accepted %d", ErrExpired, iat, oldest)
	}

	// 2. Algorithm.
	if !a.accepts(alg) {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(alg))
	}
	newHash, err := algorithm.Lookup(alg)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(alg))
	}

	// 3. Signature.
	body, err := canonical.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPayloadEncoding, err)
	}
	if !signature.Verify(newHash, a.config.Secret, body, iat, sig) {
		return ErrSignatureMismatch
	}

	// 4. Schema.
	if a.schema != nil {
		if vErr := a.schema.Validate(body); vErr != nil {
			return fmt.Errorf("%w: %w", ErrPayloadInvalid, vErr)
		}
	}

	return nil
}

func isNil(env Signed) bool {
	if env == nil {
		return true
	}
	v := reflect.ValueOf(env)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (a *Auth) accepts(alg algorithm.Algorithm) bool {
	if a.allowed == nil {
		return true
	}
	_, ok := a.allowed[alg]
	return ok
}

func (a *Auth) recordCheck(ctx context.Context, span trace.Span, alg algorithm.Algorithm, iat int64, err error) {
	result := resultOf(err)

	if a.metrics != nil {
		a.metrics.RecordVerify(result)
	}
	if span != nil {
		a.tracer.EndSpan(span, result, err)
	}

	if err != nil {
		a.logger.DebugContext(ctx, "envelope rejected",
			"reason", result,
			"alg", alg,
			"iat", iat,
			"error", err,
		)
	}
}

// resultOf maps an error from sign or Check onto an observability result.
func resultOf(err error) string {
	switch {
	case err == nil:
		return observability.ResultOK
	case errors.Is(err, ErrExpired):
		return observability.ResultExpired
	case errors.Is(err, ErrSignatureMismatch):
		return observability.ResultMismatch
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return observability.ResultUnsupportedAlgorithm
	case errors.Is(err, ErrPayloadInvalid):
		return observability.ResultInvalidPayload
	default:
		return observability.ResultEncodingError
	}
}
