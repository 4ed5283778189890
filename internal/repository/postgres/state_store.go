package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"shoresquad/internal/domain"
)

// undefinedTable is the SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// StateStore persists blobs in the app_state table.
type StateStore struct {
	DB *sql.DB
}

// Open connects to Postgres using the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewStateStore returns a store backed by the app_state table.
func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{
		DB: db,
	}
}

// EnsureSchema creates the app_state table if it does not exist.
func (r *StateStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create app_state: %w", err)
	}
	return nil
}

func (r *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM app_state WHERE key = $1`
	var value []byte
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return nil, fmt.Errorf("key %q (no app_state table): %w", key, domain.ErrNotFound)
		}
		return nil, err
	}
	return value, nil
}

func (r *StateStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, key, string(value))
	return err
}
