// Package postgres stores the key-value records in a PostgreSQL table.
package postgres

import (
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableQuery = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PgConnection is the subset of *pgxpool.Pool the store needs; pgxmock pools satisfy it too.
type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config describes how to reach the database.
type Config struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (c *Config) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", c.Username, c.Password, c.Address, c.DB)
}

// KVStore is a repository.KVStore backed by PostgreSQL.
type KVStore struct {
	conn PgConnection
}

var _ repository.KVStore = (*KVStore)(nil)

// New connects a pool and makes sure the table exists. The returned close
// function releases the pool.
func New(ctx context.Context, cfg *Config) (*KVStore, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	store, err := NewWithConn(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}

// NewWithConn wraps an existing connection (pool or mock).
func NewWithConn(ctx context.Context, conn PgConnection) (*KVStore, error) {
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := conn.Exec(ctx, createTableQuery); err != nil {
		return nil, fmt.Errorf("creating kv table: %w", err)
	}
	return &KVStore{conn: conn}, nil
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now();`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}
