package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Database owns the audit store connection.
//
// Usage:
//
//	d, err := Open("/var/lib/rga/audit.db")
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
type Database struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open creates the parent directory if needed, applies the embedded
// migrations and returns a ready Database.
func Open(path string) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	// golang-migrate closes the connection it is given, so it gets its own.
	if err := MigrateUp(path); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	conn, err := NewSQLiteConnection(DefaultConnectionConfig(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	return &Database{db: conn, path: path}, nil
}

func (d *Database) Path() string { return d.path }

// Close closes the connection. It is safe to call more than once.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	conn, err := d.conn()
	if err != nil {
		return err
	}
	return conn.PingContext(ctx)
}

func (d *Database) conn() (*sql.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return nil, fmt.Errorf("database connection is closed")
	}
	return d.db, nil
}

func (d *Database) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return conn.ExecContext(ctx, query, args...)
}

func (d *Database) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return conn.QueryContext(ctx, query, args...)
}
