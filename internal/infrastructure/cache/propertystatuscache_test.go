package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

func setupStatusCache(t *testing.T, ttl time.Duration) (*RedisPropertyStatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPropertyStatusCache(client, ttl, logger.NewNop()), mr
}

func TestRedisPropertyStatusCache_RoundTrip(t *testing.T) {
	c, mr := setupStatusCache(t, 0)
	ctx := context.Background()

	got, gen, err := c.GetStatus(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got, "miss")
	assert.Equal(t, int64(0), gen)

	view := property.NewStatusView(true, true, false)
	stored, err := c.SetStatus(ctx, 42, view, gen)
	require.NoError(t, err)
	assert.True(t, stored)

	got, gen, err = c.GetStatus(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, view, *got)
	assert.Equal(t, int64(0), gen)
	assert.Equal(t, DefaultStatusTTL, mr.TTL("property:status:42"))

	require.NoError(t, c.InvalidateStatus(ctx, 42))
	got, gen, err = c.GetStatus(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int64(1), gen)
}

func TestRedisPropertyStatusCache_StaleGenerationIsNotStored(t *testing.T) {
	c, mr := setupStatusCache(t, time.Minute)
	ctx := context.Background()

	_, gen, err := c.GetStatus(ctx, 5)
	require.NoError(t, err)

	// A claim write lands between the miss and the write-back.
	require.NoError(t, c.InvalidateStatus(ctx, 5))

	stored, err := c.SetStatus(ctx, 5, property.NewStatusView(false, false, false), gen)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("property:status:5"))

	_, gen, err = c.GetStatus(ctx, 5)
	require.NoError(t, err)
	stored, err = c.SetStatus(ctx, 5, property.NewStatusView(true, false, false), gen)
	require.NoError(t, err)
	assert.True(t, stored)

	got, _, err := c.GetStatus(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HasActive)
}

func TestRedisPropertyStatusCache_Expires(t *testing.T) {
	c, mr := setupStatusCache(t, 10*time.Second)
	ctx := context.Background()

	_, err := c.SetStatus(ctx, 7, property.NewStatusView(false, true, false), 0)
	require.NoError(t, err)

	mr.FastForward(9 * time.Second)
	got, _, err := c.GetStatus(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, got)

	mr.FastForward(2 * time.Second)
	got, _, err = c.GetStatus(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisPropertyStatusCache_SetReplacesEntry(t *testing.T) {
	c, _ := setupStatusCache(t, time.Minute)
	ctx := context.Background()

	_, err := c.SetStatus(ctx, 1, property.NewStatusView(true, false, false), 0)
	require.NoError(t, err)
	_, err = c.SetStatus(ctx, 1, property.NewStatusView(false, false, false), 0)
	require.NoError(t, err)

	got, _, err := c.GetStatus(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.HasActive)
	assert.True(t, got.CanDelete)
}

func TestRedisPropertyStatusCache_MalformedEntryIsAMiss(t *testing.T) {
	c, mr := setupStatusCache(t, time.Minute)

	mr.HSet("property:status:3", "status", "bogus")

	got, _, err := c.GetStatus(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisPropertyStatusCache_ServerDown(t *testing.T) {
	c, mr := setupStatusCache(t, time.Minute)
	mr.Close()

	_, _, err := c.GetStatus(context.Background(), 1)
	assert.Error(t, err)
	_, err = c.SetStatus(context.Background(), 1, property.NewStatusView(false, false, false), 0)
	assert.Error(t, err)
	assert.Error(t, c.InvalidateStatus(context.Background(), 1))
}
