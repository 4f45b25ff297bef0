package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on a single PostgreSQL table. It exists for
// deployments that already run Postgres and do not want a Redis dependency.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a connection pool against dsn and ensures the backing
// table exists.
func NewPostgres(ctx context.Context, dsn string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("kv: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("kv: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("kv: ping: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS kv_store (
		key   text PRIMARY KEY,
		value jsonb NOT NULL
	)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return nil, fmt.Errorf("kv: ensure table: %w", err)
	}

	return &PGStore{pool: pool}, nil
}

// Get fetches the value stored under key.
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// Set upserts the value under key.
func (s *PGStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

var _ Store = (*PGStore)(nil)
