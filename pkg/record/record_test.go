package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ccollicutt/logextract/pkg/store"
)

func TestDecode_Object(t *testing.T) {
	p, err := Decode(`{"taskNumber": 1, "system": "A", "extra": {"x": [1, 2.50]}}`)
	require.NoError(t, err)
	assert.False(t, p.IsFallback())

	obj, ok := p.Object()
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), obj["taskNumber"])
	assert.Equal(t, "A", obj["system"])

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"taskNumber":1,"system":"A","extra":{"x":[1,2.50]}}`, string(out))
	assert.Contains(t, string(out), "2.50", "numbers keep their literal text")
}

func TestDecode_NonObject(t *testing.T) {
	p, err := Decode(`[1, 2]`)
	require.NoError(t, err)
	assert.False(t, p.IsFallback())

	_, ok := p.Object()
	assert.False(t, ok)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated", `{"taskNumber": 1`},
		{"not json", `taskNumber=1`},
		{"empty", ``},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"trailing garbage", `{} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(tt.raw)
			require.Error(t, err)

			var derr *DecodeError
			assert.True(t, errors.As(err, &derr))
			assert.True(t, p.IsFallback())
			assert.Equal(t, tt.raw, p.Raw())
			assert.Equal(t, map[string]any{"raw": tt.raw}, p.Value())
		})
	}
}

func TestDecode_TrailingWhitespace(t *testing.T) {
	p, err := Decode("{\"a\": 1}\n  ")
	require.NoError(t, err)
	assert.False(t, p.IsFallback())
}

func TestPayload_FallbackMarshal(t *testing.T) {
	out, err := json.Marshal(Fallback(`{"broken": 1`))
	require.NoError(t, err)
	assert.Equal(t, `{"raw":"{\"broken\": 1"}`, string(out))
}

func TestFromRow_NullEventData(t *testing.T) {
	rec, err := FromRow(store.Row{ID: 4, EventDataNull: true})
	require.Error(t, err)
	assert.True(t, rec.Payload.IsFallback())
	assert.Equal(t, "", rec.Payload.Raw())
	assert.Equal(t, int64(4), rec.ID)
}

func TestDecodeAll_RecoversPerRecord(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	rows := []store.Row{
		{ID: 1, UserID: "P1", Timestamp: "t1", Message: "start", EventData: `{"taskNumber":1,"system":"A"}`, CreatedAt: "c1"},
		{ID: 2, UserID: "P1", Timestamp: "t2", Message: "oops", EventData: `{not json`, CreatedAt: "c2"},
		{ID: 3, UserID: "P1", Timestamp: "t3", Message: "end", EventData: `{"taskNumber":1,"system":"A"}`, CreatedAt: "c3"},
	}

	records, fallbacks := DecodeAll(rows, logger)
	require.Len(t, records, 3)
	assert.Equal(t, 1, fallbacks)

	for i, rec := range records {
		assert.Equal(t, rows[i].ID, rec.ID)
		assert.Equal(t, rows[i].Timestamp, rec.Timestamp)
		assert.Equal(t, rows[i].Message, rec.Message)
		assert.Equal(t, rows[i].CreatedAt, rec.CreatedAt)
	}
	assert.True(t, records[1].Payload.IsFallback())
	assert.Equal(t, `{not json`, records[1].Payload.Raw())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["log_id"])
}

func TestDecodeAll_NilLogger(t *testing.T) {
	records, fallbacks := DecodeAll([]store.Row{{ID: 1, EventData: "bad"}}, nil)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, fallbacks)
}
