package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ResetTokenRepository keeps password reset tokens. A token is valid until it
// is consumed or its TTL runs out.
type ResetTokenRepository interface {
	SaveResetToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, userID uuid.UUID, token string) (bool, error)
}

type resetTokenRepository struct {
	client *redis.Client
}

func NewResetTokenRepo(client *redis.Client) ResetTokenRepository {
	return &resetTokenRepository{client: client}
}

func resetTokenKey(userID uuid.UUID, token string) string {
	return fmt.Sprintf("password_reset:%s:%s", userID, token)
}

func (r *resetTokenRepository) SaveResetToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {

	if err := r.client.Set(ctx, resetTokenKey(userID, token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return nil
}

// ConsumeResetToken deletes the token and reports whether it existed, so two
// concurrent confirmations cannot both succeed.
func (r *resetTokenRepository) ConsumeResetToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {

	deleted, err := r.client.Del(ctx, resetTokenKey(userID, token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume reset token: %w", err)
	}

	return deleted == 1, nil
}
