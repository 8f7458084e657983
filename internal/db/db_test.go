package db

import (
	"path/filepath"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := NewTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	for _, table := range []string{"items", "products", "locations", "settings"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestItemsRatioConstraint(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO items (id, position, name, location, remaining_ratio, date_added, last_modified)
		VALUES (1, 0, 'Milk', 'Fridge', 1.5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected check constraint violation for remaining_ratio > 1")
	}
}

func TestOpenAppliesPragmasToEveryConnection(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "pantry.sqlite3"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	// Hold one connection so the queries below need a second one.
	conn, err := db.Conn(t.Context())
	if err != nil {
		t.Fatalf("acquiring connection: %v", err)
	}
	defer conn.Close()

	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal_mode wal, got %q", mode)
	}

	var timeout int
	if err := db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("reading busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("expected busy_timeout 5000, got %d", timeout)
	}
}

func TestOpenMemoryUsesOneConnection(t *testing.T) {
	db, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("expected 1 max open connection, got %d", got)
	}
}
