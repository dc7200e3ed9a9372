package record

import (
	"errors"

	"go.uber.org/zap"

	"github.com/ccollicutt/logextract/pkg/store"
)

// LogRecord is one log row with its decoded payload.
type LogRecord struct {
	ID        int64
	UserID    string
	Timestamp string
	Message   string
	Payload   Payload
	CreatedAt string
}

// FromRow decodes a single row. The returned error is non-nil only when the
// payload fell back to raw text; the record is usable either way.
func FromRow(row store.Row) (LogRecord, error) {
	rec := LogRecord{
		ID:        row.ID,
		UserID:    row.UserID,
		Timestamp: row.Timestamp,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}

	if row.EventDataNull {
		rec.Payload = Fallback("")
		return rec, &DecodeError{Err: errors.New("event_data is NULL")}
	}

	var err error
	rec.Payload, err = Decode(row.EventData)
	return rec, err
}

// DecodeAll decodes rows in order. A row whose event_data cannot be decoded is
// logged and kept with a fallback payload. It returns the records and the
// number of fallbacks.
func DecodeAll(rows []store.Row, logger *zap.Logger) ([]LogRecord, int) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records := make([]LogRecord, 0, len(rows))
	fallbacks := 0
	for _, row := range rows {
		rec, err := FromRow(row)
		if err != nil {
			fallbacks++
			logger.Warn("Could not parse event_data",
				zap.Int64("log_id", row.ID),
				zap.Error(err))
		}
		records = append(records, rec)
	}

	return records, fallbacks
}
