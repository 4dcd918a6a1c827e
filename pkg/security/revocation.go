package security

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"covergen/pkg/logging"
	tokenstore "covergen/pkg/token"
)

// RevocationCache fronts the authoritative revocation store with a short
// positive-only TTL cache. Only confirmed revocations are cached; not-found
// answers always go back to the store so a token revoked moments after a
// check is never masked by a stale "allowed" entry.
type RevocationCache struct {
	store   tokenstore.Store
	ttl     time.Duration
	timeout time.Duration

	mu      sync.Mutex
	entries map[string]time.Time // jti -> cache expiry
}

func NewRevocationCache(store tokenstore.Store, ttl, lookupTimeout time.Duration) *RevocationCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 3 * time.Second
	}
	return &RevocationCache{
		store:   store,
		ttl:     ttl,
		timeout: lookupTimeout,
		entries: make(map[string]time.Time),
	}
}

// IsRevoked reports whether jti is revoked. A cached positive entry answers
// without touching the store; expired entries are evicted and re-confirmed.
// Store failures fail open (not revoked): a transient outage must not lock
// out legitimate users, and expired tokens are still rejected by the normal
// JWT expiry check.
func (c *RevocationCache) IsRevoked(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}
	now := time.Now()

	c.mu.Lock()
	if exp, ok := c.entries[jti]; ok {
		if now.Before(exp) {
			c.mu.Unlock()
			return true
		}
		delete(c.entries, jti)
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	revoked, err := c.store.Lookup(ctx, jti)
	if err != nil {
		logging.Error("revocation store lookup failed", zap.Error(err), zap.String("jti", jti))
		return false
	}
	if !revoked {
		return false
	}

	c.mu.Lock()
	c.entries[jti] = now.Add(c.ttl)
	c.mu.Unlock()
	return true
}
