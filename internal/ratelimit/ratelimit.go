// Package ratelimit provides a fixed-window request limiter backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow reports whether the request is within the window's budget.
	Allow(ctx context.Context, key string) (bool, error)
}

// redisLimiter counts requests per key in fixed windows.
type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger zerolog.Logger
}

// NewRedisLimiter creates a limiter allowing limit requests per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, logger zerolog.Logger) Limiter {
	return &redisLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger.With().Str("component", "ratelimit").Logger(),
	}
}

// Allow increments the key's window counter and compares it to the budget.
// The window expiry is set when the counter is created.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window expiry")
		}
	}

	if count > int64(l.limit) {
		l.logger.Warn().
			Str("key", key).
			Int64("count", count).
			Int("limit", l.limit).
			Msg("rate limit exceeded")
		return false, nil
	}

	return true, nil
}
