package webhookauth

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/xraph/webhookauth/algorithm"
)

// Envelope is a payload together with its signature. It is the only value
// meant to cross a process boundary, usually as JSON:
//
//	{"data":{"message":"test"},"sig":"ede4af2b...","alg":"sha256","iat":60}
//
// Receivers that must reproduce a foreign signer's key order exactly can
// decode Data as json.RawMessage.
type Envelope[T any] struct {
	// Data is the original payload.
	Data T `json:"data"`

	// Sig is the lowercase hex keyed digest.
	Sig string `json:"sig"`

	// Alg is the digest algorithm. When empty the verifier's configured
	// algorithm is used.
	Alg algorithm.Algorithm `json:"alg,omitempty"`

	// Iat is the Unix second at which the envelope was signed.
	Iat int64 `json:"iat"`
}

// envelopeWire has the same layout as Envelope without its methods, so
// UnmarshalJSON can decode into it without recursing.
type envelopeWire[T any] struct {
	Data T                   `json:"data"`
	Sig  string              `json:"sig"`
	Alg  algorithm.Algorithm `json:"alg,omitempty"`
	Iat  int64               `json:"iat"`
}

// UnmarshalJSON decodes numbers inside untyped data as json.Number, so
// integers beyond float64 precision survive and re-encode unchanged.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var w envelopeWire[T]
	if err := dec.Decode(&w); err != nil {
		return err
	}
	*e = Envelope[T](w)
	return nil
}

// IssuedAt returns Iat as a time.
func (e Envelope[T]) IssuedAt() time.Time {
	return time.Unix(e.Iat, 0)
}

func (e Envelope[T]) fields() (data any, sig string, alg algorithm.Algorithm, iat int64) {
	return e.Data, e.Sig, e.Alg, e.Iat
}

// Signed is implemented by every Envelope instantiation, by value or pointer,
// so Verify accepts envelopes of any payload type. A nil pointer is rejected
// as a signature mismatch.
type Signed interface {
	fields() (data any, sig string, alg algorithm.Algorithm, iat int64)
}

var (
	_ Signed = Envelope[any]{}
	_ Signed = (*Envelope[any])(nil)
)
