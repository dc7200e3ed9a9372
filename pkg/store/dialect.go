package store

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// pgxDriver is the database/sql driver registered by pgx's stdlib package.
const pgxDriver = "pgx"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name can be used as the log table.
// Only plain identifiers are accepted since the name is interpolated into SQL.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// IsDSN reports whether location is a Postgres connection URL rather than a
// SQLite file path.
func IsDSN(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

type dialect struct {
	name   string
	driver string
	dsn    string

	// numbered placeholders ($1) instead of ?
	numbered bool
}

func (d dialect) placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// resolveDialect picks the driver for a location. SQLite paths must already
// exist: opening a missing file would silently create an empty database.
func resolveDialect(location string) (dialect, error) {
	if IsDSN(location) {
		return dialect{name: "postgres", driver: pgxDriver, dsn: location, numbered: true}, nil
	}

	if location == "" {
		return dialect{}, errors.New("no database path given")
	}

	info, err := os.Stat(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dialect{}, fmt.Errorf("database file %q not found", location)
		}
		return dialect{}, err
	}
	if info.IsDir() {
		return dialect{}, fmt.Errorf("database path %q is a directory", location)
	}

	return dialect{name: "sqlite", driver: sqliteDriver, dsn: location}, nil
}

// DisplayLocation returns location with any DSN password masked.
func DisplayLocation(location string) string {
	if !IsDSN(location) {
		return location
	}
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	return u.Redacted()
}
