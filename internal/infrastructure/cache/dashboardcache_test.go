package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

type payload struct {
	Total int    `json:"total"`
	Label string `json:"label"`
}

func TestRedisDashboardCache_RoundTrip(t *testing.T) {
	c := NewRedisDashboardCache(setupTestRedis(t), time.Minute)
	ctx := context.Background()

	var out payload
	hit, err := c.Get(ctx, "project", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "project", payload{Total: 12, Label: "sprint 4"}))

	hit, err = c.Get(ctx, "project", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Total: 12, Label: "sprint 4"}, out)
}

func TestRedisDashboardCache_InvalidateAll(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedisDashboardCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "project", payload{Total: 1}))
	require.NoError(t, c.Set(ctx, "project:trends", payload{Total: 2}))
	require.NoError(t, client.Set(ctx, "unrelated", "x", 0).Err())

	require.NoError(t, c.InvalidateAll(ctx))

	var out payload
	hit, err := c.Get(ctx, "project", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	val, err := client.Get(ctx, "unrelated").Result()
	require.NoError(t, err)
	assert.Equal(t, "x", val)
}
