package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/bundleguard/bundleguard/internal/db"
)

// NewTestDB creates an in-memory SQLite database with the application schema
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	d, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Migrate(d, "sqlite"); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return d
}

// CleanupDB closes the test database
func CleanupDB(d *sql.DB) {
	if d != nil {
		d.Close()
	}
}
