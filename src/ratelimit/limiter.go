package ratelimit

import (
	"context"
	"time"
)

// Limiter guards sensitive operations against repeated attempts. The window
// is a full-reset sliding window measured from the last counted attempt.
type Limiter interface {
	Check(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, error)
	RemainingCooldown(ctx context.Context, key string, window time.Duration) (time.Duration, error)
}

type entry struct {
	Count       int       `json:"count"`
	LastAttempt time.Time `json:"lastAttempt"`
}

func (e entry) remaining(now time.Time, window time.Duration) time.Duration {
	elapsed := now.Sub(e.LastAttempt)
	if elapsed >= window {
		return 0
	}
	return window - elapsed
}

// CooldownMinutes reports the whole minutes left in a cooldown, rounded up.
func CooldownMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}
