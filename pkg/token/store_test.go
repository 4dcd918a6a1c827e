package tokenstore

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRevokeAndLookup(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if ok, err := s.Lookup(ctx, "abc"); err != nil || ok {
		t.Fatalf("expected abc not revoked initially, ok=%v err=%v", ok, err)
	}

	if err := s.Revoke(ctx, "abc", time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if ok, _ := s.Lookup(ctx, "abc"); !ok {
		t.Fatalf("expected abc revoked after Revoke")
	}

	// empty jti is a no-op
	if err := s.Revoke(ctx, "", time.Minute); err != nil {
		t.Fatalf("empty revoke should not error: %v", err)
	}
	if ok, _ := s.Lookup(ctx, ""); ok {
		t.Fatalf("empty jti must never read as revoked")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Revoke(ctx, "short", time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	// backdate the entry instead of sleeping
	s.mu.Lock()
	s.revoked["short"] = time.Now().Add(-time.Second)
	s.mu.Unlock()

	if ok, _ := s.Lookup(ctx, "short"); ok {
		t.Fatalf("expected expired revocation to read as not revoked")
	}
	s.mu.RLock()
	_, still := s.revoked["short"]
	s.mu.RUnlock()
	if still {
		t.Fatalf("expected expired entry to be evicted on lookup")
	}
}
