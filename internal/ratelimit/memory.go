package ratelimit

import (
	"context"
	"sync"
	"time"
)

type fixedWindow struct {
	count   int64
	expires time.Time
}

// MemoryLimiter keeps window counters in process memory.
type MemoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*fixedWindow
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &MemoryLimiter{
		windows: make(map[string]*fixedWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.expires) {
		w = &fixedWindow{expires: now.Add(l.window)}
		l.windows[key] = w
	}

	w.count++

	return newResult(l.limit, w.count, w.expires.Sub(now)), nil
}

// sweep drops expired windows at most once per window length.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}

	for key, w := range l.windows {
		if !now.Before(w.expires) {
			delete(l.windows, key)
		}
	}

	l.lastSweep = now
}
