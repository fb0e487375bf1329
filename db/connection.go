// Package db records submissions to the blitter in a SQLite audit table.
// The schema ships embedded in the binary and is applied on open.
package db

import (
	"database/sql"
	"fmt"
	"time"

	// Pure Go SQLite driver, registers "sqlite".
	_ "modernc.org/sqlite"
)

// ConnectionConfig holds configuration for SQLite connections.
type ConnectionConfig struct {
	Path string
	// BusyTimeout is how long to wait for locks, in milliseconds.
	BusyTimeout     int
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConnectionConfig returns a single-writer WAL configuration.
func DefaultConnectionConfig(path string) ConnectionConfig {
	return ConnectionConfig{
		Path:         path,
		BusyTimeout:  5000,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// NewSQLiteConnection opens path with WAL journaling and checks that the
// journal mode took.
func NewSQLiteConnection(config ConnectionConfig) (*sql.DB, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []struct {
		name  string
		query string
	}{
		{"journal_mode", "PRAGMA journal_mode=WAL"},
		{"busy_timeout", fmt.Sprintf("PRAGMA busy_timeout=%d", config.BusyTimeout)},
		{"synchronous", "PRAGMA synchronous=NORMAL"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.query); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %s pragma: %w", p.name, err)
		}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		db.Close()
		return nil, fmt.Errorf("WAL mode not enabled, got: %s", journalMode)
	}
	return db, nil
}
