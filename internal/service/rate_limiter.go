package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/storefront-service/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding-window-log limiter backed by a Redis sorted set
type RedisRateLimiter struct {
	redis *database.Redis
}

// NewRedisRateLimiter creates a new Redis rate limiter
func NewRedisRateLimiter(redis *database.Redis) *RedisRateLimiter {
	return &RedisRateLimiter{redis: redis}
}

// Allow records a request for key unless limit requests already fell inside window
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error) {
	now := time.Now()
	windowStart := now.Add(-window)

	// Key format: "ratelimit:{key}"
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixMilli(), 10)).Err()
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("failed to count entries: %w", err)
	}

	if count >= int64(limit) {
		decision := RateLimitDecision{Allowed: false, RetryAfter: window}

		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			oldestTime := time.UnixMilli(int64(oldest[0].Score))
			decision.RetryAfter = window - now.Sub(oldestTime)
		}
		return decision, nil
	}

	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: uuid.New().String(),
	}).Err()
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("failed to add entry: %w", err)
	}

	// window plus a minute of slack so an idle key expires on its own
	if err := r.redis.Client.Expire(ctx, redisKey, window+time.Minute).Err(); err != nil {
		return RateLimitDecision{}, fmt.Errorf("failed to set expiry: %w", err)
	}

	return RateLimitDecision{Allowed: true, Remaining: limit - int(count) - 1}, nil
}
