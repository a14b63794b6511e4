package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the slice of *redis.Client the limiter uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

// RedisLimiter persists attempt counters as JSON entries so limits survive a
// process restart. The get-then-set sequence is not atomic across instances;
// like the rest of the service it assumes a single-instance deployment.
type RedisLimiter struct {
	client redisClient
	now    func() time.Time
}

func redisKey(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}

func (l *RedisLimiter) Check(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, error) {
	now := l.now()
	e, found, err := l.load(ctx, key)
	if err != nil {
		return false, err
	}
	if !found || now.Sub(e.LastAttempt) > window {
		l.store(ctx, key, entry{Count: 1, LastAttempt: now}, window)
		return true, nil
	}
	if e.Count >= maxAttempts {
		return false, nil
	}
	e.Count++
	e.LastAttempt = now
	l.store(ctx, key, e, window)
	return true, nil
}

func (l *RedisLimiter) RemainingCooldown(ctx context.Context, key string, window time.Duration) (time.Duration, error) {
	e, found, err := l.load(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return e.remaining(l.now(), window), nil
}

func (l *RedisLimiter) load(ctx context.Context, key string) (entry, bool, error) {
	val, err := l.client.Get(ctx, redisKey(key)).Result()
	if err == redis.Nil {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, err
	}
	var e entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return entry{}, false, nil
	}
	return e, true, nil
}

// store persists an already-allowed attempt. A persistence failure must not
// turn that allow into a denial, so errors are logged and swallowed.
func (l *RedisLimiter) store(ctx context.Context, key string, e entry, window time.Duration) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("[ratelimit] encoding entry for %s failed: %v", key, err)
		return
	}
	// The TTL doubles as eviction: an expired entry is a reset window anyway.
	if err := l.client.Set(ctx, redisKey(key), data, window).Err(); err != nil {
		log.Printf("[ratelimit] persisting entry for %s failed: %v", key, err)
	}
}
