package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the subset of *redis.Client used by CachedStore.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedStore is a read-through Redis cache in front of another Store.
// Redis failures are logged and never fail a request.
type CachedStore struct {
	next  Store
	cache Cache
	key   string
	ttl   time.Duration
}

func NewCachedStore(next Store, cache Cache, namespace string, ttl time.Duration) *CachedStore {
	return &CachedStore{
		next:  next,
		cache: cache,
		key:   fmt.Sprintf("settings:%s", namespace),
		ttl:   ttl,
	}
}

func (c *CachedStore) Get(ctx context.Context) (*Settings, error) {
	var cached Settings
	err := c.cache.Get(ctx, c.key).Scan(&cached)
	if err == nil {
		return &cached, nil
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("settings: redis error: %v", err)
	}

	s, err := c.next.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, c.key, s, c.ttl).Err(); err != nil {
		log.Printf("settings: redis set error: %v", err)
	}
	return s, nil
}

func (c *CachedStore) Save(ctx context.Context, s *Settings) error {
	if err := c.next.Save(ctx, s); err != nil {
		return err
	}
	if err := c.cache.Del(ctx, c.key).Err(); err != nil {
		log.Printf("settings: redis invalidate error: %v", err)
	}
	return nil
}
