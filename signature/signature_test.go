package signature_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/xraph/webhookauth/signature"
)

func TestComputeKnownVector(t *testing.T) {
	got := signature.Compute(sha256.New, "top-secret", []byte(`{"message":"test"}`), 60)
	want := "ede4af2b45d72cd4a766528bd08c7f436a42c9e7d1e8f612e9c6cdf9098dbc7e"
	if got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
}

func TestComputeMatchesConcatenation(t *testing.T) {
	payload := []byte(`{"invoice_id":"inv_01h2x","amount":9900}`)
	secret := "whsec_roundtripsecret"

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(`{"invoice_id":"inv_01h2x","amount":9900}1700000000`))
	expected := hex.EncodeToString(mac.Sum(nil))

	if got := signature.Compute(sha512.New, secret, payload, 1700000000); got != expected {
		t.Errorf("Compute() = %q, want %q", got, expected)
	}
}

func TestComputeNegativeTimestamp(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("s"))
	mac.Write([]byte("{}-5"))
	expected := hex.EncodeToString(mac.Sum(nil))

	if got := signature.Compute(sha256.New, "s", []byte("{}"), -5); got != expected {
		t.Errorf("Compute() = %q, want %q", got, expected)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	payload := []byte(`{"data":"value"}`)
	sig := signature.Compute(sha256.New, "whsec_correct", payload, 1700000003)

	if !signature.Verify(sha256.New, "whsec_correct", payload, 1700000003, sig) {
		t.Error("Verify() returned false for valid signature")
	}
}

func TestVerifyRejects(t *testing.T) {
	payload := []byte(`{"original":true}`)
	secret := "whsec_tampersecret"
	iat := int64(1700000002)
	sig := signature.Compute(sha256.New, secret, payload, iat)

	tests := []struct {
		name    string
		payload []byte
		secret  string
		iat     int64
		sig     string
	}{
		{"tampered payload", []byte(`{"original":false}`), secret, iat, sig},
		{"wrong secret", payload, "whsec_wrong", iat, sig},
		{"wrong timestamp", payload, secret, iat + 1, sig},
		{"uppercase hex", payload, secret, iat, upper(sig)},
		{"truncated", payload, secret, iat, sig[:len(sig)-1]},
		{"not hex", payload, secret, iat, "invalid"},
		{"empty", payload, secret, iat, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if signature.Verify(sha256.New, tt.secret, tt.payload, tt.iat, tt.sig) {
				t.Error("Verify() returned true")
			}
		})
	}
}

func TestSignatureFormat(t *testing.T) {
	sig := signature.Compute(sha256.New, "secret", []byte("test"), 123)

	if len(sig) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(sig))
	}
	if upper(sig) == sig {
		t.Errorf("expected lowercase hex digits in %q", sig)
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
