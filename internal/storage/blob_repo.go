package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ProgressKey is the fixed key the serialized progress record lives under.
const ProgressKey = "turf_state_v1"

type BlobRepo struct {
	db *sql.DB
}

func NewBlobRepo(db *sql.DB) *BlobRepo {
	return &BlobRepo{db: db}
}

// Get returns the stored value for key. The second return is false when the
// key has never been written.
func (r *BlobRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return v, true, nil
}

// Put writes value under key. The upsert is a single statement, so the write
// is atomic: readers see either the old blob or the new one, never a mix.
func (r *BlobRepo) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv put: %w", err)
	}
	return nil
}
