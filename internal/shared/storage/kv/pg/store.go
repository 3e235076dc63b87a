package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv"
)

// Store implements kv.Store on the kv_entries table.
type Store struct {
	DB *sql.DB
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`
	var value string
	if err := s.DB.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

// Put upserts value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	const query = `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, key, string(value))
	return err
}
