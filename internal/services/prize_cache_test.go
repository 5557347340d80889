package services

import (
	"context"
	"testing"

	"prizewheel/internal/models"
	"prizewheel/internal/pkg/caching"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *caching.CacheRedis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache, err := caching.NewCacheRedis(client, false)
	require.NoError(t, err)
	return cache
}

func prizeNames(prizes []models.Prize) []string {
	names := make([]string, 0, len(prizes))
	for _, prize := range prizes {
		names = append(names, prize.Name)
	}
	return names
}

func TestServicePrize_PublishActiveReplacesCachedCatalog(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	service := &ServicePrize{cache: cache}

	stale := tvAndMug()
	require.NoError(t, cache.Set(ctx, DBKeyActivePrizes(), stale, CACHE_TTL_1_MIN))

	got, err := service.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"TV", "Mug"}, prizeNames(got))

	// Mug was deactivated
	require.NoError(t, service.publishActive(ctx, stale[:1]))

	got, err = service.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"TV"}, prizeNames(got))
}

func TestActivePrizesCache_FillsOnce(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	calls := 0
	load := func() ([]models.Prize, error) {
		calls++
		return tvAndMug(), nil
	}

	for i := 0; i < 3; i++ {
		got, err := caching.UseCache(ctx, cache, DBKeyActivePrizes(), CACHE_TTL_1_MIN, load)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, caching.Invalidate(ctx, cache, DBKeyActivePrizes()))
	_, err := caching.UseCache(ctx, cache, DBKeyActivePrizes(), CACHE_TTL_1_MIN, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
