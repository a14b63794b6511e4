package ratelimit

import (
	"context"
	"sync"
	"time"
)

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// MemoryLimiter keeps per-key attempt counters in a process-local map. The
// mutex covers each entry's full read-modify-write; entries live for the
// lifetime of the process.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func (l *MemoryLimiter) Check(_ context.Context, key string, maxAttempts int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.Sub(e.LastAttempt) > window {
		l.entries[key] = entry{Count: 1, LastAttempt: now}
		return true, nil
	}
	if e.Count >= maxAttempts {
		// Denied attempts are not counted and do not extend the window.
		return false, nil
	}
	e.Count++
	e.LastAttempt = now
	l.entries[key] = e
	return true, nil
}

func (l *MemoryLimiter) RemainingCooldown(_ context.Context, key string, window time.Duration) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return 0, nil
	}
	return e.remaining(l.now(), window), nil
}
