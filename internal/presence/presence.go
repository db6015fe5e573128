package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store mirrors user presence into Redis with a TTL so a crashed process
// cannot leave a user "online" forever. The user document remains the
// durable source; this mirror only bounds staleness.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type entry struct {
	Status   string `json:"status"`
	LastSeen int64  `json:"last_seen"`
}

func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(userID string) string {
	return fmt.Sprintf("%s:presence:%s", s.prefix, userID)
}

func (s *Store) Set(ctx context.Context, userID, status string) error {
	b, _ := json.Marshal(entry{Status: status, LastSeen: time.Now().Unix()})
	ttl := s.ttl
	if status == "offline" {
		ttl = 0
	}
	return s.client.Set(ctx, s.key(userID), b, ttl).Err()
}

func (s *Store) Get(ctx context.Context, userID string) (string, error) {
	b, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return "offline", nil
	}
	if err != nil {
		return "", err
	}
	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		return "", err
	}
	return e.Status, nil
}
