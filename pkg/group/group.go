// Package group partitions log records into task groups keyed by the
// system and taskNumber fields of their payloads.
package group

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/ccollicutt/logextract/internal/jsonenc"
	"github.com/ccollicutt/logextract/pkg/record"
)

// Unknown replaces a payload field that is missing.
const Unknown = "unknown"

// Payload fields that make up a group key.
const (
	FieldSystem     = "system"
	FieldTaskNumber = "taskNumber"
)

// Key builds a group key from two already-defaulted field values,
// e.g. Key("A", "1") == "systemA_task1".
func Key(system, taskNumber string) string {
	return "system" + system + "_task" + taskNumber
}

// KeyFor returns the group key of a record.
func KeyFor(rec record.LogRecord) string {
	return Key(Field(rec.Payload, FieldSystem), Field(rec.Payload, FieldTaskNumber))
}

// Field returns the named payload field as a string, or Unknown when the
// payload is not a JSON object or lacks the field.
func Field(p record.Payload, name string) string {
	obj, ok := p.Object()
	if !ok {
		return Unknown
	}
	v, ok := obj[name]
	if !ok {
		return Unknown
	}
	return Stringify(v)
}

// Stringify converts a decoded JSON value to its key form:
//
//   - strings are used verbatim
//   - numbers keep their literal JSON text, so 1 and "1" produce the same key
//   - booleans become "true" or "false"
//   - null counts as missing and becomes Unknown
//   - objects and arrays become their compact JSON encoding, object keys sorted
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return Unknown
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := jsonenc.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// Groups maps group keys to their records. Records keep arrival order within
// a group and keys remember the order they were first seen.
type Groups struct {
	order   []string
	members map[string][]record.LogRecord
}

// ByTask groups records by KeyFor. Every record lands in exactly one group.
func ByTask(records []record.LogRecord) *Groups {
	g := &Groups{members: make(map[string][]record.LogRecord)}
	for _, rec := range records {
		g.add(KeyFor(rec), rec)
	}
	return g
}

func (g *Groups) add(key string, rec record.LogRecord) {
	if _, ok := g.members[key]; !ok {
		g.order = append(g.order, key)
	}
	g.members[key] = append(g.members[key], rec)
}

// Keys returns the group keys in lexicographic order.
func (g *Groups) Keys() []string {
	keys := g.FirstSeen()
	sort.Strings(keys)
	return keys
}

// FirstSeen returns the group keys in the order they first appeared.
func (g *Groups) FirstSeen() []string {
	return append([]string(nil), g.order...)
}

// Get returns the records of one group.
func (g *Groups) Get(key string) []record.LogRecord {
	return g.members[key]
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.order)
}

// Total returns the number of records across all groups.
func (g *Groups) Total() int {
	n := 0
	for _, recs := range g.members {
		n += len(recs)
	}
	return n
}
