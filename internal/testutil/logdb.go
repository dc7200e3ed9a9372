// Package testutil builds SQLite log stores for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// LogRow is one row inserted into a test log table. A nil EventData stores NULL.
type LogRow struct {
	ID        int64
	UserID    string
	Timestamp string
	Message   string
	EventData any
	CreatedAt string
}

// Schema is the log table layout the extractor reads.
const Schema = `CREATE TABLE user_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	message TEXT NOT NULL,
	event_data TEXT,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
)`

// CreateLogDB writes rows into a fresh user_logs table in a temporary SQLite
// file and returns the file path.
func CreateLogDB(t *testing.T, rows ...LogRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("creating user_logs: %v", err)
	}

	for _, r := range rows {
		_, err := db.Exec(
			`INSERT INTO user_logs (id, user_id, timestamp, message, event_data, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, r.Timestamp, r.Message, r.EventData, r.CreatedAt)
		if err != nil {
			t.Fatalf("inserting row %d: %v", r.ID, err)
		}
	}

	return path
}

// ScenarioRows is three rows for user P1: two for system A task 1 and one for
// system A task 2.
func ScenarioRows() []LogRow {
	return []LogRow{
		{1, "P1", "2024-03-01T09:00:00Z", "task_start", `{"taskNumber": 1, "system": "A"}`, "2024-03-01 09:00:00"},
		{2, "P1", "2024-03-01T09:05:00Z", "task_start", `{"taskNumber": 2, "system": "A"}`, "2024-03-01 09:05:00"},
		{3, "P1", "2024-03-01T09:02:00Z", "task_end", `{"taskNumber": 1, "system": "A"}`, "2024-03-01 09:02:00"},
	}
}
