package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/bundleguard/bundleguard/internal/config"
)

// Open opens a database connection for the configured driver. SQLite is the
// default; postgres is available for shared deployments.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		d   *sql.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		d, err = sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if _, err := d.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password, cfg.SSLMode)
		d, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	d.SetMaxOpenConns(cfg.MaxOpenConns)
	d.SetMaxIdleConns(cfg.MaxIdleConns)
	d.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return d, nil
}
