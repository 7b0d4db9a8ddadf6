package redisclient

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisForTest initializes a traced client against REDIS_ADDR
func setupRedisForTest(t *testing.T) *Client {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("Skipping Redis integration tests: REDIS_ADDR not set")
	}

	client := NewClient(redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	}))
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_IncrExpire(t *testing.T) {
	client := setupRedisForTest(t)
	ctx := context.Background()
	key := "test:incr:" + time.Now().Format(time.RFC3339Nano)
	defer client.Del(ctx, key)

	first, err := client.Incr(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := client.Incr(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	ok, err := client.Expire(ctx, key, time.Minute).Result()
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestClient_UnreachableServer(t *testing.T) {
	client := NewClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, client.Ping(ctx).Err())
	assert.Error(t, client.Incr(ctx, "test:unreachable").Err())
}
