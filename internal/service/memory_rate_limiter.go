package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type keyLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// MemoryRateLimiter is a per-key token bucket limiter held in process memory
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyLimiter
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryRateLimiter creates a limiter that evicts keys idle for longer than idleTTL
func NewMemoryRateLimiter(idleTTL time.Duration) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		limiters: make(map[string]*keyLimiter),
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow takes one token from the bucket for key. The bucket refills limit
// tokens per window and holds at most limit.
func (rl *MemoryRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error) {
	if limit <= 0 || window <= 0 {
		return RateLimitDecision{}, fmt.Errorf("invalid rate limit %d per %s", limit, window)
	}

	every := rate.Every(window / time.Duration(limit))
	now := time.Now()
	l := rl.limiterFor(fmt.Sprintf("%s|%d|%s", key, limit, window), every, limit, now)

	if !l.AllowN(now, 1) {
		retry := time.Duration(math.Ceil(float64(time.Second) / float64(every)))
		return RateLimitDecision{Allowed: false, RetryAfter: retry}, nil
	}

	remaining := int(l.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitDecision{Allowed: true, Remaining: remaining}, nil
}

func (rl *MemoryRateLimiter) limiterFor(key string, every rate.Limit, burst int, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	kl, ok := rl.limiters[key]
	if !ok {
		kl = &keyLimiter{limiter: rate.NewLimiter(every, burst)}
		rl.limiters[key] = kl
	}
	kl.lastAccess = now

	return kl.limiter
}

// Len returns the number of tracked keys
func (rl *MemoryRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Stop ends the background cleanup
func (rl *MemoryRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, kl := range rl.limiters {
		if now.Sub(kl.lastAccess) > rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
}
