package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const defaultMaxKeys = 10000

// MemoryRateLimiter is the single-process fallback used when Redis is
// disabled. Each key gets a token bucket refilled at limit/window; the
// least recently seen keys are evicted once maxKeys is reached.
type MemoryRateLimiter struct {
	limit    int
	window   time.Duration
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	if limit <= 0 {
		limit = 120
	}
	if window <= 0 {
		window = time.Minute
	}
	cache, _ := lru.New[string, *rate.Limiter](defaultMaxKeys)
	return &MemoryRateLimiter{
		limit:    limit,
		window:   window,
		limiters: cache,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (Result, error) {
	limiter := l.limiterFor(key)

	now := time.Now()
	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return Result{Allowed: false, Limit: l.limit, RetryAfter: delay}, nil
	}

	remaining := int(math.Floor(limiter.TokensAt(now)))
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Limit: l.limit, Remaining: remaining}, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.limiters.Remove(key)
	return nil
}

func (l *MemoryRateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters.Get(key); ok {
		return limiter
	}
	every := rate.Every(l.window / time.Duration(l.limit))
	limiter := rate.NewLimiter(every, l.limit)
	l.limiters.Add(key, limiter)
	return limiter
}
