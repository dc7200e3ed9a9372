//go:build !sqlite_cgo

package store

import _ "modernc.org/sqlite"

// sqliteDriver is the database/sql driver used for file-backed stores.
const sqliteDriver = "sqlite"
