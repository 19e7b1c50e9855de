package db

import (
	"database/sql"
	"fmt"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS devices (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    platform TEXT,
    created_at TIMESTAMP NOT NULL,
    last_seen TIMESTAMP
);

CREATE TABLE IF NOT EXISTS usage_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL,
    timestamp TIMESTAMP NOT NULL,
    rx_bytes INTEGER NOT NULL DEFAULT 0,
    tx_bytes INTEGER NOT NULL DEFAULT 0,
    app_name TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_usage_device_ts ON usage_records(device_id, timestamp);

CREATE TABLE IF NOT EXISTS alerts (
    id TEXT PRIMARY KEY,
    device_id TEXT,
    type TEXT NOT NULL,
    severity TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    detected_at TIMESTAMP NOT NULL,
    app_name TEXT,
    current_usage INTEGER NOT NULL,
    expected_usage INTEGER NOT NULL,
    percentage_increase INTEGER NOT NULL,
    recommendations TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_alerts_detected ON alerts(detected_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS devices (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    platform TEXT,
    created_at TIMESTAMPTZ NOT NULL,
    last_seen TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS usage_records (
    id BIGSERIAL PRIMARY KEY,
    device_id TEXT NOT NULL,
    timestamp TIMESTAMPTZ NOT NULL,
    rx_bytes BIGINT NOT NULL DEFAULT 0,
    tx_bytes BIGINT NOT NULL DEFAULT 0,
    app_name TEXT,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_usage_device_ts ON usage_records(device_id, timestamp);

CREATE TABLE IF NOT EXISTS alerts (
    id TEXT PRIMARY KEY,
    device_id TEXT,
    type TEXT NOT NULL,
    severity TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    detected_at TIMESTAMPTZ NOT NULL,
    app_name TEXT,
    current_usage BIGINT NOT NULL,
    expected_usage BIGINT NOT NULL,
    percentage_increase BIGINT NOT NULL,
    recommendations TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_alerts_detected ON alerts(detected_at);
`

// Schema returns the DDL for the given driver.
func Schema(driver string) (string, error) {
	switch driver {
	case "sqlite":
		return sqliteSchema, nil
	case "postgres":
		return postgresSchema, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Migrate creates the schema for the given driver if it does not exist.
func Migrate(d *sql.DB, driver string) error {
	schema, err := Schema(driver)
	if err != nil {
		return err
	}
	_, err = d.Exec(schema)
	return err
}
