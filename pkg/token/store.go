package tokenstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the authoritative record of revoked token IDs (jti claims). A jti
// stays revoked until the underlying JWT would have expired anyway, so
// entries are written with the token's remaining lifetime as TTL.
type Store interface {
	// Revoke marks jti as revoked for ttl.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// Lookup reports whether jti is revoked.
	Lookup(ctx context.Context, jti string) (bool, error)
}

const redisKeyPrefix = "revoked:"

// RedisStore keeps revocations in Redis so they survive restarts and are
// shared across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, redisKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke %s: %w", jti, err)
	}
	return nil
}

func (s *RedisStore) Lookup(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, redisKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", jti, err)
	}
	return n > 0, nil
}

// MemoryStore is an in-process fallback used in development and tests when no
// Redis address is configured. Revocations are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	s.mu.Lock()
	s.revoked[jti] = time.Now().Add(ttl)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	now := time.Now()
	s.mu.RLock()
	exp, ok := s.revoked[jti]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if now.After(exp) {
		s.mu.Lock()
		// re-check under the write lock, Revoke may have refreshed it
		if exp2, ok2 := s.revoked[jti]; ok2 && now.After(exp2) {
			delete(s.revoked, jti)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
