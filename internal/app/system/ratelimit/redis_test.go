package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, s
}

func TestRedisLimiter_AllowAndExpire(t *testing.T) {
	client, s := setupTestRedis(t)
	l := NewRedis(client, "test:", 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.True(t, s.Exists("test:k"))
	require.Greater(t, s.TTL("test:k"), time.Duration(0))

	s.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLimiter_Reset(t *testing.T) {
	client, s := setupTestRedis(t)
	l := NewRedis(client, "", 1, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "k")
	ok, _ := l.Allow(ctx, "k")
	require.False(t, ok)

	require.NoError(t, l.Reset(ctx, "k"))
	require.False(t, s.Exists("ratelimit:k"))
	ok, _ = l.Allow(ctx, "k")
	require.True(t, ok)
}

func TestRedisLimiter_ServerDown(t *testing.T) {
	client, s := setupTestRedis(t)
	l := NewRedis(client, "", 1, time.Minute)
	s.Close()

	_, err := l.Allow(context.Background(), "k")
	require.Error(t, err)
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestSignInLimiter_Redis(t *testing.T) {
	client, _ := setupTestRedis(t)
	l := NewSignInLimiter(
		NewRedis(client, "signin:", 10, time.Minute),
		NewRedis(client, "signin:", 1, time.Minute),
	)
	ctx := WithClientIP(context.Background(), "10.0.0.1")

	reason, err := l.Check(ctx, "a@example.com")
	require.NoError(t, err)
	require.Empty(t, reason)

	reason, err = l.Check(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, reason)
}
