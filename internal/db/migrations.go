package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: barcode scans look items up by barcode.
	`CREATE INDEX IF NOT EXISTS idx_items_barcode ON items(barcode) WHERE barcode <> ''`,
	// Migration 2: the list is reloaded in stored order.
	`CREATE INDEX IF NOT EXISTS idx_items_position ON items(position)`,
}

// Migrate creates the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
