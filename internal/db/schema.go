package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id              INTEGER PRIMARY KEY,
    position        INTEGER NOT NULL,
    name            TEXT NOT NULL,
    barcode         TEXT NOT NULL DEFAULT '',
    location        TEXT NOT NULL,
    is_discrete     INTEGER NOT NULL DEFAULT 0,
    quantity        INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
    unit            TEXT NOT NULL DEFAULT '',
    remaining_ratio REAL NOT NULL DEFAULT 1 CHECK (remaining_ratio >= 0 AND remaining_ratio <= 1),
    perishable_date DATETIME,
    date_added      DATETIME NOT NULL,
    last_modified   DATETIME NOT NULL,
    image_small_url TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
    barcode         TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    quantity        TEXT NOT NULL DEFAULT '',
    image_small_url TEXT NOT NULL DEFAULT '',
    image_front_url TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL DEFAULT '',
    fetched_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS locations (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
