// Package canonical produces the byte encoding a payload is signed over.
//
// Signer and verifier must agree on these bytes exactly. The encoding is
// compact JSON without HTML escaping, which is what JavaScript's
// JSON.stringify emits for the same value:
//
//   - struct fields appear in declaration order
//   - map keys are sorted
//   - json.RawMessage values are compacted and otherwise kept as-is,
//     so receivers can preserve a sender's key order
package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal returns the canonical encoding of v.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("canonical: encode payload: %w", err)
	}
	// Encode terminates every value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
