// Package ratelimit allows one action per key per window.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow reports whether the action may run now. When it may not, retry
	// is how long until the window closes.
	Allow(ctx context.Context, key string, window time.Duration) (ok bool, retry time.Duration, err error)
	Clear(ctx context.Context, key string) error
}

// New returns a redis-backed limiter, or an in-process one when rdb is nil.
func New(rdb *redis.Client) Limiter {
	if rdb == nil {
		return NewMemory()
	}
	return &redisLimiter{rdb: rdb}
}

func redisKey(key string) string {
	return fmt.Sprintf("rate_limit:%s", key)
}

type redisLimiter struct {
	rdb *redis.Client
}

func (l *redisLimiter) Allow(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	wasSet, err := l.rdb.SetNX(ctx, redisKey(key), "locked", window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return true, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, redisKey(key)).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return false, ttl, nil
}

func (l *redisLimiter) Clear(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, redisKey(key)).Err()
}

type memoryLimiter struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemory() Limiter {
	return &memoryLimiter{until: map[string]time.Time{}, now: time.Now}
}

func (l *memoryLimiter) Allow(_ context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, ok := l.until[key]; ok && until.After(now) {
		return false, until.Sub(now), nil
	}
	l.until[key] = now.Add(window)
	return true, 0, nil
}

func (l *memoryLimiter) Clear(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.until, key)
	return nil
}
