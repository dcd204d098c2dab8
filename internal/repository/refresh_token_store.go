package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenNotFound signals an unknown, expired, or revoked token.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenStore tracks issued refresh tokens by jti so they can be
// rotated and revoked.
type RefreshTokenStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	Get(ctx context.Context, jti string) (string, error)
	Revoke(ctx context.Context, jti string) error
}

const refreshKeyPrefix = "auth:refresh:"

type redisRefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore returns a Redis-backed implementation.
func NewRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	return &redisRefreshTokenStore{client: client}
}

func (s *redisRefreshTokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err()
}

func (s *redisRefreshTokenStore) Get(ctx context.Context, jti string) (string, error) {
	userID, err := s.client.Get(ctx, refreshKeyPrefix+jti).Result()
	if err == redis.Nil {
		return "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *redisRefreshTokenStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshKeyPrefix+jti).Err()
}
