// internal/store/sqlite.go
//
// SQLite-backed Store. Values live in the kv table created by the
// migrations under assets/sql and survive process restarts.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite persists values in a *sql.DB opened with the sqlite3 driver.
type SQLite struct{ db *sql.DB }

// NewSQLiteStore wraps an already-migrated database handle.
func NewSQLiteStore(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Get reads a value; a missing row reads as 0.
func (s *SQLite) Get(ctx context.Context, key string) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

// Set upserts the value and stamps updated_at.
func (s *SQLite) Set(ctx context.Context, key string, value int) error {
	if value < 0 {
		return ErrNegative
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
