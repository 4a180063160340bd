package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const forgotPasswordKeyPrefix = "forgot_password:"

// ForgotPasswordThrottle caps reset requests per email within a fixed window.
type ForgotPasswordThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewForgotPasswordThrottle(client *redis.Client, limit int, window time.Duration) *ForgotPasswordThrottle {
	return &ForgotPasswordThrottle{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow counts one attempt for email and reports whether it is within the limit.
func (t *ForgotPasswordThrottle) Allow(ctx context.Context, email string) (bool, error) {
	key := forgotPasswordKeyPrefix + strings.ToLower(email)

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count reset attempt: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set reset attempt window: %w", err)
		}
	}

	return count <= t.limit, nil
}
