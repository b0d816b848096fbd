package redis

// Package redis provides the Redis-backed token store, for deployments where
// the client container is ephemeral but a redis sidecar is not.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/volunteerhub/webclient/internal/session"
)

const defaultTokenKey = "volunteerhub:token"

// TokenStore persists the bearer token under one fixed key. The token is
// stored without a TTL: its validity is decided by the platform, not locally.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// NewTokenStore creates a Redis token store using the default key.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{client: client, key: defaultTokenKey}
}

// NewTokenStoreWithKey creates a Redis token store with a custom key.
func NewTokenStoreWithKey(client redis.UniversalClient, key string) *TokenStore {
	if key == "" {
		key = defaultTokenKey
	}
	return &TokenStore{client: client, key: key}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", session.ErrNoToken
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", session.ErrNoToken
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
