package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("admin token not found")

// AccessDenied is the whole response body for any rejected request.
const AccessDenied = "Sorry, you are not allowed to access this page."

// CookieName carries the admin token for browser sessions.
const CookieName = "admin_token"

type AdminToken struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TokenHash     string    `json:"token_hash"`
	ManageOptions bool      `json:"manage_options"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// MarshalBinary implements encoding.BinaryMarshaler for Redis
func (a *AdminToken) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for Redis
func (a *AdminToken) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}

type Store interface {
	GetByToken(ctx context.Context, token string) (*AdminToken, error)
	Create(ctx context.Context, t *AdminToken) error
	// Revoke deactivates the token and returns its hash.
	Revoke(ctx context.Context, id string) (string, error)
}

// Cache is the subset of *redis.Client the middleware needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const cacheTTL = 5 * time.Minute

type Middleware func(next http.Handler) http.Handler

type contextKey string

const (
	adminIDKey   contextKey = "admin_id"
	adminNameKey contextKey = "admin_name"
	requestIDKey contextKey = "request_id"
)

// HashToken is the stored form of a raw admin token.
func HashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(tokenHash string) string {
	return fmt.Sprintf("admin:%s", tokenHash)
}

// NewMiddleware admits requests carrying an active token with the
// manage_options capability. Everything else gets a bare 403.
func NewMiddleware(store Store, cache Cache) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			requestID := uuid.New().String()
			ctx = context.WithValue(ctx, requestIDKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			token := extractToken(r)
			if token == "" {
				deny(w)
				return
			}

			redisKey := cacheKey(HashToken(token))

			var admin AdminToken
			err := cache.Get(ctx, redisKey).Scan(&admin)
			if err != nil {
				if !errors.Is(err, redis.Nil) {
					log.Printf("auth: redis error: %v", err)
				}

				found, err := store.GetByToken(ctx, token)
				if err != nil {
					if !errors.Is(err, ErrTokenNotFound) {
						log.Printf("auth: token lookup failed: %v", err)
					}
					deny(w)
					return
				}
				admin = *found

				_ = cache.Set(ctx, redisKey, &admin, cacheTTL).Err()
			}

			if !admin.Active || !admin.ManageOptions {
				deny(w)
				return
			}

			ctx = context.WithValue(ctx, adminIDKey, admin.ID)
			ctx = context.WithValue(ctx, adminNameKey, admin.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func deny(w http.ResponseWriter) {
	http.Error(w, AccessDenied, http.StatusForbidden)
}

// Manager revokes tokens and drops them from the middleware cache so the
// revocation takes effect on the next request.
type Manager struct {
	store Store
	cache Cache
}

func NewManager(store Store, cache Cache) *Manager {
	return &Manager{store: store, cache: cache}
}

func (m *Manager) Revoke(ctx context.Context, id string) error {
	tokenHash, err := m.store.Revoke(ctx, id)
	if err != nil {
		return err
	}
	if err := m.cache.Del(ctx, cacheKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to evict revoked token: %w", err)
	}
	log.Printf("auth: token %s revoked", id)
	return nil
}

// Helpers to extract from context
func GetAdminID(ctx context.Context) string {
	if id, ok := ctx.Value(adminIDKey).(string); ok {
		return id
	}
	return ""
}

func GetAdminName(ctx context.Context) string {
	if name, ok := ctx.Value(adminNameKey).(string); ok {
		return name
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Helpers for testing
func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
