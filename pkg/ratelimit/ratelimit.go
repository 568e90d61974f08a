package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	extratelimit "github.com/vnmchuo/ratelimiter"
)

// Limiter is a thin wrapper around github.com/vnmchuo/ratelimiter
type Limiter struct {
	store extratelimit.Limiter
}

func NewLimiter(rdb *redis.Client, requestsPerMinute int64) *Limiter {
	store := extratelimit.NewRedisStore(rdb,
		extratelimit.WithLimit(int(requestsPerMinute)),
		extratelimit.WithWindow(time.Minute),
	)
	return &Limiter{store: store}
}

func NewTestLimiter(store extratelimit.Limiter) *Limiter {
	return &Limiter{store: store}
}

func (l *Limiter) Allow(ctx context.Context, adminID string) (bool, error) {
	res, err := l.store.Allow(ctx, key(adminID))
	if err != nil {
		return false, err
	}
	return res.Allowed, nil
}

func key(adminID string) string {
	return fmt.Sprintf("ratelimit:admin:%s", adminID)
}

// Middleware rejects requests over the per-admin budget with 429. The
// identity comes from idFunc; requests without one are passed through.
// Limiter errors fail open.
func (l *Limiter) Middleware(idFunc func(context.Context) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := idFunc(r.Context())
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := l.Allow(r.Context(), id)
			if err != nil {
				log.Printf("ratelimit: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60s")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error":       "rate limit exceeded",
					"retry_after": "60s",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
