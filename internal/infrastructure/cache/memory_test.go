package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var got sample
	found, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", sample{Name: "a", Count: 2}, time.Minute))
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sample{Name: "a", Count: 2}, got)

	require.NoError(t, c.Delete(ctx, "k", "other"))
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "short", []int{1, 2}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var got []int
	found, err := c.Get(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	in := []sample{{Name: "x"}}
	require.NoError(t, c.Set(ctx, "list", in, time.Minute))
	in[0].Name = "mutated"

	var out []sample
	found, err := c.Get(ctx, "list", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "x", out[0].Name)
}
