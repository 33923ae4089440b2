package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimit is the outcome of one recorded login attempt.
type RateLimit struct {
	Allowed    bool
	Attempts   int64
	Remaining  int
	RetryAfter time.Duration
}

type LoginLimiter interface {
	Attempt(ctx context.Context, email string) (RateLimit, error)
}

// slidingWindowLimiter keeps one sorted set per email whose members are
// attempt timestamps in milliseconds.
type slidingWindowLimiter struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

func NewLoginLimiter(client *redis.Client, cfg config.RateConfig) LoginLimiter {
	return &slidingWindowLimiter{client: client, cfg: cfg, now: time.Now}
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

// Attempt records an attempt and counts those inside the window. The
// attempt that crosses the limit is itself rejected.
func (l *slidingWindowLimiter) Attempt(ctx context.Context, email string) (RateLimit, error) {

	key := loginAttemptsKey(email)
	now := l.now()
	windowStart := now.Add(-l.cfg.WindowSize).UnixMilli()

	var count *redis.IntCmd
	var oldest *redis.ZSliceCmd

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: now.UnixNano()})
		count = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		pipe.Expire(ctx, key, l.cfg.WindowSize)
		return nil
	})
	if err != nil {
		return RateLimit{}, fmt.Errorf("failed to record login attempt: %w", err)
	}

	attempts := count.Val()
	if attempts <= l.cfg.MaxAttempts {
		return RateLimit{Allowed: true, Attempts: attempts, Remaining: int(l.cfg.MaxAttempts - attempts)}, nil
	}

	retryAfter := l.cfg.WindowSize
	if scores := oldest.Val(); len(scores) > 0 {
		expires := time.UnixMilli(int64(scores[0].Score)).Add(l.cfg.WindowSize)
		retryAfter = max(expires.Sub(now), 0)
	}

	return RateLimit{Allowed: false, Attempts: attempts, RetryAfter: retryAfter}, nil
}
