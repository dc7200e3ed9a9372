// Package store reads raw user log rows from a relational log store.
package store

import (
	"errors"
	"fmt"
)

// DefaultTable is the log table queried when no table is configured.
const DefaultTable = "user_logs"

// Row is a single log row as stored, before event_data is decoded.
type Row struct {
	ID        int64
	UserID    string
	Timestamp string
	Message   string

	// EventData is the serialized payload text.
	EventData string

	// EventDataNull is true when the event_data column was NULL.
	EventDataNull bool

	CreatedAt string
}

// UserCount is the number of rows stored for one user.
type UserCount struct {
	UserID string
	Rows   int
}

// ErrUnavailable matches every error returned when a store cannot be opened.
var ErrUnavailable = errors.New("store unavailable")

// UnavailableError reports a store location that is missing or cannot be opened.
type UnavailableError struct {
	Location string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store %q unavailable: %v", e.Location, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is reports ErrUnavailable as a match.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// QueryError reports a failed query against an open store.
type QueryError struct {
	Table string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("querying %s: %v", e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
