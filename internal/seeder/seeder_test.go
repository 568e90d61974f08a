package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/vnmchuo/ai-admin/internal/auth"
)

type recordingStore struct {
	created []*auth.AdminToken
	err     error
}

func (s *recordingStore) GetByToken(ctx context.Context, token string) (*auth.AdminToken, error) {
	return nil, auth.ErrTokenNotFound
}

func (s *recordingStore) Create(ctx context.Context, t *auth.AdminToken) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, t)
	return nil
}

func (s *recordingStore) Revoke(ctx context.Context, id string) (string, error) { return "", nil }

func TestSeedAdminToken(t *testing.T) {
	store := &recordingStore{}
	SeedAdminToken(context.Background(), store)

	if len(store.created) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(store.created))
	}
	tok := store.created[0]
	if tok.TokenHash != auth.HashToken(DevAdminToken) {
		t.Errorf("Expected hashed dev token, got %s", tok.TokenHash)
	}
	if !tok.ManageOptions || !tok.Active {
		t.Errorf("Expected active token with manage_options, got %+v", tok)
	}
}

func TestSeedAdminToken_AlreadyExists(t *testing.T) {
	store := &recordingStore{err: errors.New("duplicate key value violates unique constraint")}
	SeedAdminToken(context.Background(), store)

	if len(store.created) != 0 {
		t.Errorf("Expected no tokens, got %d", len(store.created))
	}
}
