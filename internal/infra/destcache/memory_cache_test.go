package destcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/diveplanner/internal/domain/destination"
)

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, destination.CachedInfo{Key: "cozumel", Info: "derivas"}, time.Hour))
	got, ok, err := cache.Get(ctx, "cozumel")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "derivas", got.Info)

	now = now.Add(2 * time.Hour)
	_, ok, err = cache.Get(ctx, "cozumel")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheTrending(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.IncrementQuery(ctx, "cozumel", "Cozumel"))
	require.NoError(t, cache.IncrementQuery(ctx, "cozumel", "cozumel"))
	require.NoError(t, cache.IncrementQuery(ctx, "bonaire", "Bonaire"))
	require.NoError(t, cache.IncrementQuery(ctx, "", "ignored"))
	require.NoError(t, cache.IncrementQuery(ctx, "aruba", "Aruba"))

	items, err := cache.TopQueries(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []destination.TrendingDestination{
		{Destination: "Cozumel", Count: 2},
		{Destination: "Aruba", Count: 1},
	}, items)
}
