package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps the record as a JSON blob in the options table, one
// row per namespace.
type PostgresStore struct {
	db        DB
	namespace string
}

func NewPostgresStore(db DB, namespace string) Store {
	return &PostgresStore{db: db, namespace: namespace}
}

func (s *PostgresStore) Get(ctx context.Context) (*Settings, error) {
	query := `SELECT value FROM options WHERE name = $1`

	var raw []byte
	err := s.db.QueryRow(ctx, query, s.namespace).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var out Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	return &out, nil
}

// Save overwrites the stored record unconditionally; concurrent saves are
// last-write-wins.
func (s *PostgresStore) Save(ctx context.Context, in *Settings) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
		INSERT INTO options (name, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.Exec(ctx, query, s.namespace, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
