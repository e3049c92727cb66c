package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"telehealth-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a live server: REDIS_TEST_HOST=localhost go test ./...
func TestRedisCache_RoundTrip(t *testing.T) {
	host := os.Getenv("REDIS_TEST_HOST")
	if host == "" {
		t.Skip("REDIS_TEST_HOST not set")
	}

	client, err := NewRedisClient(config.RedisConfig{Host: host, Port: "6379"})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCache(client)
	key := "telehealth:test:" + t.Name()

	require.NoError(t, c.Set(ctx, key, sample{Name: "r", Count: 1}, time.Minute))

	var got sample
	found, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "r", got.Name)

	require.NoError(t, c.Delete(ctx, key))
	found, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)
}
