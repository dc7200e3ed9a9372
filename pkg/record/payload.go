// Package record decodes raw log rows into log records with structured
// event payloads.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/logextract/internal/jsonenc"
)

// Payload is the decoded event_data of a log record. It holds either the
// decoded JSON value or, when decoding failed, the original text.
type Payload struct {
	value    any
	raw      string
	fallback bool
}

// Decoded wraps a successfully decoded JSON value.
func Decoded(v any) Payload {
	return Payload{value: v}
}

// Fallback wraps event_data text that could not be decoded.
func Fallback(raw string) Payload {
	return Payload{raw: raw, fallback: true}
}

// IsFallback reports whether decoding failed.
func (p Payload) IsFallback() bool {
	return p.fallback
}

// Raw returns the undecodable text of a fallback payload.
func (p Payload) Raw() string {
	return p.raw
}

// Value returns the payload as a JSON-compatible value. Fallback payloads are
// returned as {"raw": text}.
func (p Payload) Value() any {
	if p.fallback {
		return map[string]any{"raw": p.raw}
	}
	return p.value
}

// Object returns the decoded value when it is a JSON object.
// Fallback payloads are never objects.
func (p Payload) Object() (map[string]any, bool) {
	if p.fallback {
		return nil, false
	}
	m, ok := p.value.(map[string]any)
	return m, ok
}

// MarshalJSON encodes the payload value. Numbers keep their original text.
func (p Payload) MarshalJSON() ([]byte, error) {
	return jsonenc.Marshal(p.Value())
}

// DecodeError is returned when event_data is not a single valid JSON value.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid event_data: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errTrailingData = errors.New("unexpected data after JSON value")

// Decode parses serialized event_data. On failure it returns a fallback
// payload carrying the original text together with a *DecodeError, so callers
// can keep the record and report the problem.
func Decode(raw string) (Payload, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty input")
		}
		return Fallback(raw), &DecodeError{Err: err}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Fallback(raw), &DecodeError{Err: errTrailingData}
	}

	return Decoded(v), nil
}
