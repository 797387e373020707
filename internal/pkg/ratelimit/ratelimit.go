package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Limiter allows one action per key within a fixed interval.
// State lives in process memory and is lost on restart.
type Limiter struct {
	interval time.Duration
	entries  *cache.Cache
	mu       sync.Mutex
	now      func() time.Time
}

// NewLimiter creates a limiter; a non-positive interval allows everything
func NewLimiter(interval time.Duration) *Limiter {
	cleanup := interval
	if cleanup <= 0 {
		cleanup = time.Minute
	}

	return &Limiter{
		interval: interval,
		entries:  cache.New(interval, cleanup),
		now:      time.Now,
	}
}

// Allow records an action for key and reports whether it was permitted.
// When denied, the returned duration is how long the caller has to wait.
func (l *Limiter) Allow(key string) (time.Duration, bool) {
	if l.interval <= 0 {
		return 0, true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if v, found := l.entries.Get(key); found {
		last := v.(time.Time)
		if wait := l.interval - now.Sub(last); wait > 0 {
			return wait, false
		}
	}

	l.entries.Set(key, now, l.interval)
	return 0, true
}

// Reset forgets key, letting the next action through
func (l *Limiter) Reset(key string) {
	l.entries.Delete(key)
}
