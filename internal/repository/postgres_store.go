package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const documentsSchema = `CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    version BIGINT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresDocumentStore keeps documents in a single key/value table.
type PostgresDocumentStore struct {
	db *sqlx.DB
}

// NewPostgresDocumentStore constructs the store.
func NewPostgresDocumentStore(db *sqlx.DB) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

// EnsureSchema creates the documents table when missing.
func (r *PostgresDocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// Load fetches a document; a missing row yields the zero Document.
func (r *PostgresDocumentStore) Load(ctx context.Context, key string) (Document, error) {
	const query = `SELECT value, version FROM documents WHERE key = $1`
	var row struct {
		Value   []byte `db:"value"`
		Version int64  `db:"version"`
	}
	if err := r.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("load document %s: %w", key, err)
	}
	return Document{Value: row.Value, Version: row.Version}, nil
}

// Save inserts the first version or conditionally updates an existing row.
// Zero affected rows means another writer got there first.
func (r *PostgresDocumentStore) Save(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	now := time.Now().UTC()
	var (
		version int64
		err     error
	)
	if expected == 0 {
		const query = `INSERT INTO documents (key, value, version, updated_at)
VALUES ($1, $2, 1, $3)
ON CONFLICT (key) DO NOTHING
RETURNING version`
		err = r.db.GetContext(ctx, &version, query, key, string(value), now)
	} else {
		const query = `UPDATE documents SET value = $2, version = version + 1, updated_at = $3
WHERE key = $1 AND version = $4
RETURNING version`
		err = r.db.GetContext(ctx, &version, query, key, string(value), now, expected)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVersionConflict
		}
		return 0, fmt.Errorf("save document %s: %w", key, err)
	}
	return version, nil
}

// Delete removes a document row.
func (r *PostgresDocumentStore) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}
	return nil
}
