package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps any Redis transport or server failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

// DefaultKeyPrefix matches the wire-compatible key layout refresh_token_<user-id>.
const DefaultKeyPrefix = "refresh_token_"

// Store is the Redis-backed session marker store. One key per user; writes
// overwrite unconditionally (last writer wins), deletes are idempotent.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a marker [Store] on the given Redis client. An empty
// prefix falls back to [DefaultKeyPrefix].
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Save writes the user's marker with the given TTL, replacing any previous
// marker. The write is synchronous: when Save returns nil the new marker is
// observable by any subsequent Get.
func (s *Store) Save(ctx context.Context, userID, refreshTokenID string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(userID), refreshTokenID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get returns the user's current marker. An absent or expired marker
// surfaces as redis.Nil, which callers treat as "no active session".
func (s *Store) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, nil
}

// Delete removes the user's marker. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
