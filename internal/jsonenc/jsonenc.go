// Package jsonenc encodes JSON without HTML escaping and without the trailing
// newline json.Encoder appends.
package jsonenc

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes v compactly.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, "")
}

// MarshalIndent encodes v, indenting nested values by indent when it is
// non-empty. Map keys are sorted by encoding/json.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
