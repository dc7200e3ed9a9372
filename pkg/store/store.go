package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Reader runs read-only queries against one log store.
// A Reader holds an open connection until Close is called.
type Reader struct {
	db       *sql.DB
	location string
	table    string
	dialect  dialect
}

// Option configures a Reader.
type Option func(*Reader)

// WithTable overrides the log table name (default "user_logs").
func WithTable(name string) Option {
	return func(r *Reader) {
		if name != "" {
			r.table = name
		}
	}
}

// Open connects to the store at location, which is either a SQLite file path
// or a postgres:// DSN. It fails with an *UnavailableError if the store is
// missing or cannot be reached.
func Open(ctx context.Context, location string, opts ...Option) (*Reader, error) {
	r := &Reader{
		location: location,
		table:    DefaultTable,
	}
	for _, opt := range opts {
		opt(r)
	}

	if !ValidTableName(r.table) {
		return nil, fmt.Errorf("invalid table name %q", r.table)
	}

	d, err := resolveDialect(location)
	if err != nil {
		return nil, &UnavailableError{Location: location, Err: err}
	}
	r.dialect = d

	db, err := sql.Open(d.driver, d.dsn)
	if err != nil {
		return nil, &UnavailableError{Location: location, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &UnavailableError{Location: location, Err: err}
	}

	r.db = db
	return r, nil
}

// Close releases the underlying connection.
func (r *Reader) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Dialect returns "sqlite" or "postgres".
func (r *Reader) Dialect() string {
	return r.dialect.name
}

// Table returns the queried table name.
func (r *Reader) Table() string {
	return r.table
}

// FetchUserLogs returns every row for userID ordered by timestamp ascending.
// Rows sharing a timestamp are ordered by id.
func (r *Reader) FetchUserLogs(ctx context.Context, userID string) ([]Row, error) {
	query := fmt.Sprintf(
		`SELECT "id", "user_id", "timestamp", "message", "event_data", "created_at"
		FROM %q
		WHERE "user_id" = %s
		ORDER BY "timestamp" ASC, "id" ASC`,
		r.table, r.dialect.placeholder(1))

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, &QueryError{Table: r.table, Err: err}
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var user, timestamp, message, eventData, createdAt sql.NullString
		if err := rows.Scan(&row.ID, &user, &timestamp, &message, &eventData, &createdAt); err != nil {
			return nil, &QueryError{Table: r.table, Err: fmt.Errorf("scanning row: %w", err)}
		}
		row.UserID = user.String
		row.Timestamp = timestamp.String
		row.Message = message.String
		row.EventData = eventData.String
		row.EventDataNull = !eventData.Valid
		row.CreatedAt = createdAt.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Table: r.table, Err: err}
	}

	return out, nil
}

// ListUsers returns every user id in the table with its row count, sorted by
// user id.
func (r *Reader) ListUsers(ctx context.Context) ([]UserCount, error) {
	query := fmt.Sprintf(
		`SELECT "user_id", COUNT(*) FROM %q GROUP BY "user_id" ORDER BY "user_id" ASC`,
		r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Table: r.table, Err: err}
	}
	defer rows.Close()

	var out []UserCount
	for rows.Next() {
		var (
			user sql.NullString
			uc   UserCount
		)
		if err := rows.Scan(&user, &uc.Rows); err != nil {
			return nil, &QueryError{Table: r.table, Err: fmt.Errorf("scanning row: %w", err)}
		}
		uc.UserID = user.String
		out = append(out, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Table: r.table, Err: err}
	}

	return out, nil
}

// CheckSchema verifies that the table exists and has every column the
// extractor reads. No rows are fetched.
func (r *Reader) CheckSchema(ctx context.Context) error {
	query := fmt.Sprintf(
		`SELECT "id", "user_id", "timestamp", "message", "event_data", "created_at" FROM %q LIMIT 0`,
		r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return &QueryError{Table: r.table, Err: err}
	}
	return rows.Close()
}

// FetchUserLogs opens the store, reads every row for userID and closes the
// store again. The connection is released on every return path.
func FetchUserLogs(ctx context.Context, location, userID string, opts ...Option) (rows []Row, err error) {
	r, err := Open(ctx, location, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()

	return r.FetchUserLogs(ctx, userID)
}
