package ephemcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "pos:saturn")
	require.NoError(t, err)
	require.False(t, ok)

	want := astro.CelestialPosition{Body: astro.Saturn, Longitude: 341.08, Speed: 0.12}
	require.NoError(t, cache.Set(ctx, "pos:saturn", want, time.Hour))

	got, ok, err := cache.Get(ctx, "pos:saturn")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", astro.CelestialPosition{Body: astro.Pluto}, time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", astro.CelestialPosition{Body: astro.Pluto}, 0))

	now = now.Add(2 * time.Minute)
	_, ok, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = cache.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, cache.Len())
}
