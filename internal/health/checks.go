package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/segmentio/kafka-go"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "bookstore-api",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:    "kafka",
				Timeout: 3 * time.Second,
				// events are best-effort on the API side
				SkipOnErr: true,
				Check:     kafkaCheck(cfg.Kafka.Brokers),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// kafkaCheck reports healthy when any broker accepts a connection and answers
// a metadata request.
func kafkaCheck(brokers []string) func(ctx context.Context) error {
	return func(ctx context.Context) error {

		if len(brokers) == 0 {
			return fmt.Errorf("no kafka brokers configured")
		}

		var lastErr error

		for _, broker := range brokers {
			conn, err := kafka.DialContext(ctx, "tcp", broker)
			if err != nil {
				lastErr = err
				continue
			}

			_, err = conn.Brokers()
			conn.Close()
			if err != nil {
				lastErr = err
				continue
			}

			return nil
		}

		return fmt.Errorf("failed to reach kafka: %w", lastErr)
	}
}
