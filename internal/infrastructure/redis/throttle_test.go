package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/internal/config"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestForgotPasswordThrottle_Window(t *testing.T) {
	client, mr := setupTestRedis(t)
	throttle := NewForgotPasswordThrottle(client, 2, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := throttle.Allow(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := throttle.Allow(ctx, "A@X.com")
	require.NoError(t, err)
	assert.False(t, ok, "third attempt in the window is refused, case-insensitively")

	ok, err = throttle.Allow(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, ok, "other emails have their own budget")

	assert.Equal(t, 15*time.Minute, mr.TTL("forgot_password:a@x.com"))

	mr.FastForward(16 * time.Minute)
	ok, err = throttle.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestForgotPasswordThrottle_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	_, err := NewForgotPasswordThrottle(client, 1, time.Minute).Allow(context.Background(), "a@x.com")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()

	client, err := NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	// the address must be captured before Close, which resets the server
	mr.Close()
	_, err = NewClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
