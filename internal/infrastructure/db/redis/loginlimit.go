package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = time.Minute
)

// AttemptLimiter throttles login attempts per identity using a TTL counter.
// Key format: loginattempt:<kind>:<identity>
type AttemptLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewAttemptLimiter creates an AttemptLimiter wrapping the given Redis client.
func NewAttemptLimiter(client *redis.Client) *AttemptLimiter {
	return &AttemptLimiter{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		window:      defaultWindow,
	}
}

// Allow registers one attempt for the identity and reports whether it is
// within the window budget. The first attempt sets the window expiry.
func (l *AttemptLimiter) Allow(ctx context.Context, kind, identity string) (bool, error) {
	key := l.key(kind, identity)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("login limit expire: %w", err)
		}
	}
	return n <= l.maxAttempts, nil
}

func (l *AttemptLimiter) key(kind, identity string) string {
	return fmt.Sprintf("loginattempt:%s:%s", kind, identity)
}
