package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps one live session record per user so logout can
// terminate it server-side. Records expire with the token.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, prefix string, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSessionStore) key(userID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, userID)
}

func (s *RedisSessionStore) Save(ctx context.Context, userID, token string) error {
	return s.client.Set(ctx, s.key(userID), token, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
