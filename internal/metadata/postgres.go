package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of *pgxpool.Pool used by PostgresStore.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps records in the file_metadata table.
type PostgresStore struct {
	db querier
}

// NewPostgresStore creates a PostgresStore backed by the given pool.
func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get fetches the record stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (*Record, error) {
	var (
		value string
		raw   []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT value, metadata FROM file_metadata WHERE key = $1`,
		key,
	).Scan(&value, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata %q: %w", key, err)
	}

	md, err := decodeMetadata(raw)
	if err != nil {
		return nil, fmt.Errorf("get metadata %q: %w", key, err)
	}
	return &Record{Key: key, Value: value, Metadata: md}, nil
}

// Delete removes the row for key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM file_metadata WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete metadata %q: %w", key, err)
	}
	return nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
