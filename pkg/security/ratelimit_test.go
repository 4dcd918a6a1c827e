package security

import (
	"sync"
	"testing"
	"time"
)

func TestLimiterAllowsUpToMax(t *testing.T) {
	l := NewLimiter(15*time.Minute, 5, 0)
	key := "1.2.3.4:/auth/login"

	for i := 0; i < 5; i++ {
		if d := l.Allow(key); !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	d := l.Allow(key)
	if d.Allowed {
		t.Fatalf("6th request within the window should be rejected")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > 900 {
		t.Fatalf("retryAfter should be in (0, 900], got %d", d.RetryAfter)
	}
}

func TestLimiterWindowReset(t *testing.T) {
	l := NewLimiter(15*time.Minute, 5, 0)
	key := "1.2.3.4:/auth/login"

	for i := 0; i < 6; i++ {
		l.Allow(key)
	}
	// simulate the window elapsing
	l.mu.Lock()
	l.windows[key].resetAt = time.Now().Add(-time.Second)
	l.mu.Unlock()

	if d := l.Allow(key); !d.Allowed {
		t.Fatalf("first request after window reset should be allowed")
	}
	l.mu.Lock()
	count := l.windows[key].count
	l.mu.Unlock()
	if count != 1 {
		t.Fatalf("window reset should restart count at 1, got %d", count)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(time.Minute, 1, 0)

	if d := l.Allow("a:/x"); !d.Allowed {
		t.Fatalf("first request on a should pass")
	}
	if d := l.Allow("a:/x"); d.Allowed {
		t.Fatalf("second request on a should be rejected")
	}
	if d := l.Allow("b:/x"); !d.Allowed {
		t.Fatalf("request on an unrelated key should pass")
	}
}

func TestLimiterConcurrentCounting(t *testing.T) {
	const max = 50
	l := NewLimiter(time.Minute, max, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < max*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d := l.Allow("k:/r"); d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != max {
		t.Fatalf("expected exactly %d allowed under contention, got %d", max, allowed)
	}
}

func TestLimiterSweepRemovesExpiredWindows(t *testing.T) {
	l := NewLimiter(time.Minute, 5, 10*time.Millisecond)
	defer l.Stop()

	l.Allow("gone:/x")
	l.mu.Lock()
	l.windows["gone:/x"].resetAt = time.Now().Add(-time.Second)
	l.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for {
		l.mu.Lock()
		_, ok := l.windows["gone:/x"]
		l.mu.Unlock()
		if !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected sweep to remove the expired window")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
