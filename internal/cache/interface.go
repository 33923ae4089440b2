package cache

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const BookListKeyPrefix = "books:list"

// QueryKey renders query parameters in sorted order so equivalent queries
// share one entry.
func QueryKey(prefix string, q url.Values) string {
	return prefix + ":" + q.Encode()
}

// keyPrefix strips the encoded query from a QueryKey result. Encoded queries
// never contain a raw colon.
func keyPrefix(key string) string {
	if i := strings.LastIndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Fetch is cache-aside: it serves key from c when present, otherwise calls
// load and stores the result for ttl. Cache failures are logged and never
// fail the call.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {

	logger := middleware.LoggerFromContext(ctx)

	prefix := keyPrefix(key)

	var cached T
	found, err := c.Get(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(prefix, metrics.CacheError)
		logger.Warn("Cache read failed", slog.String("key", key), slog.Any("error", err))
	case found:
		metrics.RecordCacheLookup(prefix, metrics.CacheHit)
		return cached, nil
	default:
		metrics.RecordCacheLookup(prefix, metrics.CacheMiss)
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
