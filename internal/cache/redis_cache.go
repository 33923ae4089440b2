package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON encoded values. Entries expire by TTL only; catalog
// writes do not evict cached pages.
type RedisCache struct {
	rdb        redis.Cmdable
	defaultTTL time.Duration
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(rdb redis.Cmdable, cfg *config.CacheConfig) *RedisCache {
	return &RedisCache{rdb: rdb, defaultTTL: cfg.DefaultTTL}
}

// Get decodes the entry into dest. A missing key is (false, nil).
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache get %s: unmarshal: %w", key, err)
	}

	return true, nil
}

// Set uses the configured default TTL when ttl is not positive.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %s: marshal: %w", key, err)
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}

	return nil
}

// Close does nothing; the client belongs to the caller.
func (c *RedisCache) Close() error {
	return nil
}
