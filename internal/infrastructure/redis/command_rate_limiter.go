package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CommandRateLimiter is a fixed-window per-dealer counter in redis, shared
// across all instances serving the same book.
type CommandRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewCommandRateLimiter(
	client *redis.Client,
	limit int64,
	window time.Duration,
	prefix string,
) *CommandRateLimiter {
	return &CommandRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

func (r *CommandRateLimiter) Allow(ctx context.Context, dealerID string) (bool, error) {
	const op = "redis.CommandRateLimiter.Allow"

	key := r.prefix + dealerID

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	return count <= r.limit, nil
}
