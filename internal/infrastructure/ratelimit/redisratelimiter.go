package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding-window limiter backed by Redis sorted sets.
type RedisRateLimiter struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisRateLimiter creates a new RedisRateLimiter
func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	return &RedisRateLimiter{
		client: client,
		ctx:    context.Background(),
	}
}

// Allow records one request and reports whether the window still had room
// before it.
func (l *RedisRateLimiter) Allow(key string, window Window) (bool, error) {
	if window.Max <= 0 || window.Duration <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := l.getKey(key, window.Duration)
	windowStart := now.Add(-window.Duration).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(l.ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(l.ctx, redisKey)
	pipe.ZAdd(l.ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(l.ctx, redisKey, window.Duration+time.Minute)

	if _, err := pipe.Exec(l.ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(window.Max), nil
}

// GetRemaining reports how many requests the window has left.
func (l *RedisRateLimiter) GetRemaining(key string, window Window) (int64, error) {
	redisKey := l.getKey(key, window.Duration)
	now := time.Now()
	windowStart := now.Add(-window.Duration).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(l.ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(l.ctx, redisKey)

	if _, err := pipe.Exec(l.ctx); err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	used := zcard.Val()
	remaining := int64(window.Max) - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Reset clears every window tracked for the key.
func (l *RedisRateLimiter) Reset(key string) error {
	pattern := fmt.Sprintf("ratelimit:%s:*", key)

	var cursor uint64
	for {
		keys, next, err := l.client.Scan(l.ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan rate limit keys: %w", err)
		}

		if len(keys) > 0 {
			if err := l.client.Del(l.ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete rate limit keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (l *RedisRateLimiter) getKey(key string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, int64(window.Seconds()))
}
