package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

// SQLKVRepository stores string values in the kv_entries table. Queries use
// bindvars rebound for the driver, so it serves both PostgreSQL and SQLite.
type SQLKVRepository struct {
	db *sqlx.DB
}

// NewSQLKVRepository constructs the repository.
func NewSQLKVRepository(db *sqlx.DB) *SQLKVRepository {
	return &SQLKVRepository{db: db}
}

// EnsureSchema creates the kv_entries table when missing.
func (r *SQLKVRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, kvSchema); err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (r *SQLKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := r.db.Rebind(`SELECT key, value, updated_at FROM kv_entries WHERE key = ?`)
	var entry models.KVEntry
	if err := r.db.GetContext(ctx, &entry, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Set inserts or replaces the value under key.
func (r *SQLKVRepository) Set(ctx context.Context, key string, value []byte) error {
	query := r.db.Rebind(`INSERT INTO kv_entries (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if _, err := r.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key holds a value.
func (r *SQLKVRepository) Exists(ctx context.Context, key string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(1) FROM kv_entries WHERE key = ?`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, key); err != nil {
		return false, fmt.Errorf("exists kv %s: %w", key, err)
	}
	return count > 0, nil
}

// Keys lists keys starting with prefix in ascending order.
func (r *SQLKVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := r.db.Rebind(`SELECT key FROM kv_entries WHERE key LIKE ? ESCAPE '\' ORDER BY key ASC`)
	var keys []string
	if err := r.db.SelectContext(ctx, &keys, query, escapeLike(prefix)+"%"); err != nil {
		return nil, fmt.Errorf("list kv keys %s: %w", prefix, err)
	}
	return keys, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
