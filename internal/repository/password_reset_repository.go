package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "password_reset:"

// PasswordResetRepository stores single-use password reset tokens.
type PasswordResetRepository interface {
	Save(ctx context.Context, token, email string, ttl time.Duration) error
	// Consume returns the email bound to token and deletes it atomically.
	Consume(ctx context.Context, token string) (string, error)
}

// ResetCmdable is the subset of the Redis client used for reset tokens.
type ResetCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

type redisPasswordResetRepository struct {
	client ResetCmdable
}

// NewPasswordResetRepository returns a Redis-backed implementation. Tokens
// are stored under their SHA-256 digest and expire with their TTL.
func NewPasswordResetRepository(client ResetCmdable) PasswordResetRepository {
	return &redisPasswordResetRepository{client: client}
}

func (r *redisPasswordResetRepository) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	return r.client.Set(ctx, resetKey(token), email, ttl).Err()
}

func (r *redisPasswordResetRepository) Consume(ctx context.Context, token string) (string, error) {
	email, err := r.client.GetDel(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return email, nil
}

func resetKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return resetKeyPrefix + hex.EncodeToString(sum[:])
}
