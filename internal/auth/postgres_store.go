package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) Store {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByToken(ctx context.Context, token string) (*AdminToken, error) {
	query := `
		SELECT id, name, token_hash, manage_options, active, created_at
		FROM admin_tokens
		WHERE token_hash = $1 AND active = true
	`

	var t AdminToken
	err := s.db.QueryRow(ctx, query, HashToken(token)).Scan(
		&t.ID, &t.Name, &t.TokenHash, &t.ManageOptions, &t.Active, &t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get admin token: %w", err)
	}

	return &t, nil
}

func (s *PostgresStore) Create(ctx context.Context, t *AdminToken) error {
	if t.TokenHash == "" {
		return fmt.Errorf("token_hash is required")
	}

	query := `
		INSERT INTO admin_tokens (name, token_hash, manage_options, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query,
		t.Name, t.TokenHash, t.ManageOptions, t.Active,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create admin token: %w", err)
	}

	return nil
}

func (s *PostgresStore) Revoke(ctx context.Context, id string) (string, error) {
	query := `
		UPDATE admin_tokens SET active = false
		WHERE id = $1
		RETURNING token_hash
	`

	var tokenHash string
	err := s.db.QueryRow(ctx, query, id).Scan(&tokenHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to revoke admin token: %w", err)
	}

	return tokenHash, nil
}
