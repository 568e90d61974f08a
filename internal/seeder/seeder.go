package seeder

import (
	"context"
	"log"

	"github.com/vnmchuo/ai-admin/internal/auth"
)

const (
	DevAdminToken = "dev-admin-token-12345"
	DevAdminName  = "dev-admin"
)

// SeedAdminToken creates a development admin token with the
// manage_options capability. An existing token is left alone.
func SeedAdminToken(ctx context.Context, store auth.Store) {
	token := &auth.AdminToken{
		Name:          DevAdminName,
		TokenHash:     auth.HashToken(DevAdminToken),
		ManageOptions: true,
		Active:        true,
	}

	if err := store.Create(ctx, token); err != nil {
		log.Printf("[Seeder] Admin token may already exist, skipping: %v", err)
		return
	}
	log.Printf("[Seeder] Admin token created successfully")
	log.Printf("[Seeder] Token: %s", DevAdminToken)
	log.Printf("[Seeder] Send it as 'Authorization: Bearer <token>' or the %s cookie", auth.CookieName)
}
