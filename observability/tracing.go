package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/webhookauth"

// Tracer provides OpenTelemetry tracing for sign and verify calls.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from tp, or from the global provider if tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: tp.Tracer(tracerName),
	}
}

// StartSignSpan starts a span for signing a payload with alg.
func (t *Tracer) StartSignSpan(ctx context.Context, alg string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "webhookauth.sign",
		trace.WithAttributes(attribute.String("webhookauth.alg", alg)),
	)
}

// StartVerifySpan starts a span for checking an envelope.
func (t *Tracer) StartVerifySpan(ctx context.Context, alg string, iat int64) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "webhookauth.verify",
		trace.WithAttributes(
			attribute.String("webhookauth.alg", alg),
			attribute.Int64("webhookauth.iat", iat),
		),
	)
}

// EndSpan records the result on span and ends it.
func (t *Tracer) EndSpan(span trace.Span, result string, err error) {
	span.SetAttributes(attribute.String("webhookauth.result", result))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
	}
	span.End()
}
