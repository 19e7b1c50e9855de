package db

import (
	"database/sql"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

func TestMigrate_Sqlite(t *testing.T) {
	d, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer d.Close()

	if err := Migrate(d, "sqlite"); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// Running again must be a no-op
	if err := Migrate(d, "sqlite"); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	_, err = d.Exec(`
INSERT INTO usage_records (device_id, timestamp, rx_bytes, tx_bytes, app_name, created_at)
VALUES ('d1', '2026-08-31 10:00:00', 100, 50, 'Instagram', '2026-08-31 10:00:00')`)
	if err != nil {
		t.Errorf("insert into migrated schema failed: %v", err)
	}
}

func TestSchema_PerDriver(t *testing.T) {
	tests := []struct {
		name        string
		driver      string
		wantErr     bool
		mustContain []string
		mustNotHave []string
	}{
		{
			name:        "sqlite uses autoincrement",
			driver:      "sqlite",
			mustContain: []string{"INTEGER PRIMARY KEY AUTOINCREMENT"},
		},
		{
			name:        "postgres avoids sqlite keywords",
			driver:      "postgres",
			mustContain: []string{"BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ"},
			mustNotHave: []string{"AUTOINCREMENT"},
		},
		{
			name:    "unknown driver",
			driver:  "mysql",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := Schema(tt.driver)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Schema(%q) expected error, got nil", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("Schema(%q) error = %v", tt.driver, err)
			}
			for _, s := range tt.mustContain {
				if !strings.Contains(schema, s) {
					t.Errorf("Schema(%q) missing %q", tt.driver, s)
				}
			}
			for _, s := range tt.mustNotHave {
				if strings.Contains(schema, s) {
					t.Errorf("Schema(%q) must not contain %q", tt.driver, s)
				}
			}
		})
	}
}
