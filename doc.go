// Package webhookauth provides time-bound HMAC signing and verification of
// structured webhook payloads.
//
// A sender wraps a payload in an Envelope carrying a keyed digest, the digest
// algorithm, and the Unix second it was issued at. A receiver holding the same
// secret accepts the envelope only if the digest matches and the envelope is
// no older than the configured TTL.
//
// webhookauth is a library, not a transport. Callers choose how the envelope
// travels (typically as a JSON request body) and where secrets come from.
//
// Key features:
//   - HMAC over the canonical JSON payload followed by the issued-at second
//   - Digest algorithm recorded per envelope and overridable per call
//   - Per-client secrets on the signing side, one secret on the verifying side
//   - Constant-time signature comparison
//   - Optional JSON Schema validation, Prometheus metrics and OpenTelemetry spans
//
// Quick start:
//
//	auth, err := webhookauth.New(
//	    webhookauth.WithSecret("top-secret"),
//	    webhookauth.WithTTL(5*time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env, err := webhookauth.Sign(auth, Invoice{ID: "inv_01h..."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// on the receiving side, after decoding the request body into env
//	if !auth.Verify(env) {
//	    http.Error(w, "invalid signature", http.StatusUnauthorized)
//	}
package webhookauth
