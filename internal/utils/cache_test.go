package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)

	var got []string
	found, err := GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", []string{"a", "b"}, time.Minute))
	found, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, DeleteCache(ctx, rdb, "k"))
	found, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheExpires(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)

	require.NoError(t, SetCache(ctx, rdb, "k", 1, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got int
	found, err := GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGenerationBump(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)

	gen, err := Generation(ctx, rdb, "users")
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, BumpGeneration(ctx, rdb, "users", "entries"))
	require.NoError(t, BumpGeneration(ctx, rdb, "users"))

	gen, err = Generation(ctx, rdb, "users")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	gen, err = Generation(ctx, rdb, "entries")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	assert.Equal(t, "users:v2:all", GenerationKey("users", 2, "all"))
}
