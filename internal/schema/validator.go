// Package schema validates canonical payload bytes against a JSON Schema.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resourceURL = "webhookauth://schema/payload.json"

// Validator checks payloads against one compiled schema. It is safe for
// concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile compiles schema, which may be raw JSON ([]byte, json.RawMessage,
// string) or any value that marshals to a JSON Schema document.
func Compile(schema any) (*Validator, error) {
	raw, err := toJSON(schema)
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if addErr := c.AddResource(resourceURL, doc); addErr != nil {
		return nil, fmt.Errorf("add schema resource: %w", addErr)
	}

	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks a JSON-encoded payload.
func (v *Validator) Validate(payload []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return v.schema.Validate(inst)
}

func toJSON(schema any) ([]byte, error) {
	switch s := schema.(type) {
	case nil:
		return nil, fmt.Errorf("schema is nil")
	case json.RawMessage:
		return s, nil
	case []byte:
		return s, nil
	case string:
		return []byte(s), nil
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return raw, nil
}
