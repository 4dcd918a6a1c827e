package security

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	revoked map[string]bool
	err     error
	lookups int
}

func (f *fakeStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[jti] = true
	return nil
}

func (f *fakeStore) Lookup(_ context.Context, jti string) (bool, error) {
	f.lookups++
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

func TestRevokedResultIsCached(t *testing.T) {
	store := &fakeStore{revoked: map[string]bool{"abc": true}}
	c := NewRevocationCache(store, 60*time.Second, time.Second)
	ctx := context.Background()

	// three checks within the TTL must hit the store exactly once
	for i := 0; i < 3; i++ {
		if !c.IsRevoked(ctx, "abc") {
			t.Fatalf("check %d: expected abc revoked", i+1)
		}
	}
	if store.lookups != 1 {
		t.Fatalf("expected exactly 1 store lookup, got %d", store.lookups)
	}
}

func TestNotRevokedIsNeverCached(t *testing.T) {
	store := &fakeStore{}
	c := NewRevocationCache(store, 60*time.Second, time.Second)
	ctx := context.Background()

	if c.IsRevoked(ctx, "tok") {
		t.Fatalf("expected tok not revoked")
	}
	// revocation lands between checks; the next check must see it
	store.revoked = map[string]bool{"tok": true}
	if !c.IsRevoked(ctx, "tok") {
		t.Fatalf("expected tok revoked after store update")
	}
	if store.lookups != 2 {
		t.Fatalf("expected both checks to reach the store, got %d lookups", store.lookups)
	}
}

func TestExpiredEntryIsEvictedAndReconfirmed(t *testing.T) {
	store := &fakeStore{revoked: map[string]bool{"old": true}}
	c := NewRevocationCache(store, 60*time.Second, time.Second)
	ctx := context.Background()

	if !c.IsRevoked(ctx, "old") {
		t.Fatalf("expected old revoked")
	}
	c.mu.Lock()
	c.entries["old"] = time.Now().Add(-time.Second)
	c.mu.Unlock()

	if !c.IsRevoked(ctx, "old") {
		t.Fatalf("expected old still revoked after cache expiry")
	}
	if store.lookups != 2 {
		t.Fatalf("expected expired entry to trigger a second store lookup, got %d", store.lookups)
	}
}

func TestStoreFailureFailsOpen(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	c := NewRevocationCache(store, 60*time.Second, time.Second)

	if c.IsRevoked(context.Background(), "abc") {
		t.Fatalf("expected store failure to read as not revoked")
	}
}

func TestEmptyJTI(t *testing.T) {
	store := &fakeStore{}
	c := NewRevocationCache(store, 60*time.Second, time.Second)

	if c.IsRevoked(context.Background(), "") {
		t.Fatalf("empty jti must never be revoked")
	}
	if store.lookups != 0 {
		t.Fatalf("empty jti must not reach the store")
	}
}
