package cache_test

import (
	"context"
	"rentro/infras/otel/mocks"
	"rentro/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func setup(t *testing.T) (*miniredis.Miniredis, cache.RedisCache) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return server, cache.NewRedisCache(client, mocks.NewOtel())
}

func TestSaveAndGetStruct(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "request:get:1", cachedRequest{ID: "1", Status: "cho_xac_nhan"}, 60))

	var got cachedRequest
	require.NoError(t, c.Get(ctx, "request:get:1", &got))
	assert.Equal(t, cachedRequest{ID: "1", Status: "cho_xac_nhan"}, got)
}

func TestSaveAndGetString(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "token", "abc", 60))

	var got string
	require.NoError(t, c.Get(ctx, "token", &got))
	assert.Equal(t, "abc", got)
}

func TestGetMiss(t *testing.T) {
	_, c := setup(t)

	var got cachedRequest
	err := c.Get(context.Background(), "missing", &got)

	require.Error(t, err)
	assert.True(t, cache.IsMiss(err))
}

func TestSaveExpires(t *testing.T) {
	server, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "short", "v", 1))
	server.FastForward(2 * time.Second)

	var got string
	assert.True(t, cache.IsMiss(c.Get(ctx, "short", &got)))
}

func TestDeleteAndClear(t *testing.T) {
	server, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "request:post:1", "a", 60))
	require.NoError(t, c.Save(ctx, "request:post:2", "b", 60))
	require.NoError(t, c.Save(ctx, "user:get:1", "c", 60))

	require.NoError(t, c.Delete(ctx, "request:post:2"))
	assert.False(t, server.Exists("request:post:2"))

	require.NoError(t, c.Clear(ctx, "request:*"))
	assert.False(t, server.Exists("request:post:1"))
	assert.True(t, server.Exists("user:get:1"))
}
