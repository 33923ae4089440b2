package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings Redis. The client backs the page cache,
// the login limiter and password reset tokens.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	rc := cfg.RedisConnect
	slog.Info("Connecting to Redis", slog.String("host", rc.Host), slog.String("port", rc.Port), slog.Int("db", rc.DB))

	opt, err := redis.ParseURL(rc.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}
