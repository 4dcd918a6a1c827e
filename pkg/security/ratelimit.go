package security

import (
	"sync"
	"time"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// Decision is the outcome of a limiter check. RetryAfter is whole seconds
// until the window resets, set only on rejection.
type Decision struct {
	Allowed    bool
	RetryAfter int
}

// Limiter is a fixed-window request counter keyed by caller identity and
// route. Windows are replaced, not decayed: the first request at or past
// resetAt starts a fresh window with count 1.
type Limiter struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	windows map[string]*rateWindow

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter returns a limiter allowing max requests per window per key. If
// sweepInterval > 0 a background sweep drops expired windows until Stop is
// called, bounding memory to active keys.
func NewLimiter(window time.Duration, max int, sweepInterval time.Duration) *Limiter {
	l := &Limiter{
		window:  window,
		max:     max,
		windows: make(map[string]*rateWindow),
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go l.sweep(sweepInterval)
	}
	return l
}

// Stop terminates the sweep goroutine. Idempotent.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Allow records one request for key and decides whether it is within the
// window budget. The whole check-and-count transition happens under the lock
// so two racing requests on one key cannot both slip past the threshold.
func (l *Limiter) Allow(key string) Decision {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &rateWindow{count: 1, resetAt: now.Add(l.window)}
		return Decision{Allowed: true}
	}

	w.count++
	if w.count > l.max {
		remaining := w.resetAt.Sub(now)
		retry := int((remaining + time.Second - 1) / time.Second)
		if retry < 1 {
			retry = 1
		}
		return Decision{Allowed: false, RetryAfter: retry}
	}
	return Decision{Allowed: true}
}

func (l *Limiter) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			now := time.Now()
			l.mu.Lock()
			for k, w := range l.windows {
				if !now.Before(w.resetAt) {
					delete(l.windows, k)
				}
			}
			l.mu.Unlock()
		}
	}
}
