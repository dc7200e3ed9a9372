//go:build sqlite_cgo

package store

import _ "github.com/mattn/go-sqlite3"

// sqliteDriver is the database/sql driver used for file-backed stores.
const sqliteDriver = "sqlite3"
