package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisScope keeps scope entries under a common key prefix. A zero TTL
// makes entries live until removed (handoff scope); a positive TTL bounds
// the lifetime of mirrored session state (tab scope).
type RedisScope struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisScope returns a redis-backed scope.
func NewRedisScope(client *redis.Client, prefix string, ttl time.Duration) *RedisScope {
	return &RedisScope{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisScope) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Get returns the stored value or ErrNotFound.
func (s *RedisScope) Get(ctx context.Context, key string) (string, error) {
	result, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return result, nil
}

// Set stores the value under the scope's TTL policy.
func (s *RedisScope) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *RedisScope) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
