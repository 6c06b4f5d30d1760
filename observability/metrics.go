// Package observability provides Prometheus metrics and OpenTelemetry spans
// for signing and verification.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcomes used as the "result" label and span attribute.
const (
	ResultOK                   = "ok"
	ResultExpired              = "expired"
	ResultMismatch             = "mismatch"
	ResultUnsupportedAlgorithm = "unsupported_algorithm"
	ResultInvalidPayload       = "invalid_payload"
	ResultEncodingError        = "encoding_error"
)

// Metrics holds the counters recorded by an Auth instance.
type Metrics struct {
	SignedTotal   *prometheus.CounterVec
	VerifiedTotal *prometheus.CounterVec
}

// NewMetrics creates the instruments and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhookauth_signed_total",
			Help: "Envelopes signed, by digest algorithm.",
		}, []string{"alg"}),
		VerifiedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhookauth_verified_total",
			Help: "Envelopes checked, by verification result.",
		}, []string{"result"}),
	}
}

// RecordSign counts one envelope signed with alg.
func (m *Metrics) RecordSign(alg string) {
	m.SignedTotal.WithLabelValues(alg).Inc()
}

// RecordVerify counts one verification with the given result.
func (m *Metrics) RecordVerify(result string) {
	m.VerifiedTotal.WithLabelValues(result).Inc()
}
