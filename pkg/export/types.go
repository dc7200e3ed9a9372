// Package export writes task groups to one JSON file per group.
package export

import (
	"errors"
	"fmt"

	"github.com/ccollicutt/logextract/pkg/record"
)

// File is the document written for one task group.
type File struct {
	UserID   string  `json:"user_id"`
	Task     string  `json:"task"`
	LogCount int     `json:"log_count"`
	Logs     []Entry `json:"logs"`
}

// Entry is one log record inside a File.
type Entry struct {
	ID        int64          `json:"id"`
	Timestamp string         `json:"timestamp"`
	Message   string         `json:"message"`
	EventData record.Payload `json:"event_data"`
	CreatedAt string         `json:"created_at"`
}

// NewFile builds the document for a group.
func NewFile(userID, task string, recs []record.LogRecord) *File {
	f := &File{
		UserID:   userID,
		Task:     task,
		LogCount: len(recs),
		Logs:     make([]Entry, len(recs)),
	}
	for i, r := range recs {
		f.Logs[i] = Entry{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Message:   r.Message,
			EventData: r.Payload,
			CreatedAt: r.CreatedAt,
		}
	}
	return f
}

// ErrInvalidUserID is returned for user ids that cannot name a directory.
var ErrInvalidUserID = errors.New("invalid user id")

// ErrNameCollision is returned when two group keys map to the same file name.
var ErrNameCollision = errors.New("group file name collision")

// WriteError reports an output directory or file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
