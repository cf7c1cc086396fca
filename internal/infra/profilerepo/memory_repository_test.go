package profilerepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, found)

	lat, lon := 55.75, 37.61
	in := profile.Profile{
		UserID: "u1",
		Name:   "Ada",
		Birth:  astro.BirthData{Date: "1990-05-23", Time: "14:30", Latitude: &lat, Longitude: &lon},
		NatalChart: &astro.NatalChart{
			Planets: map[astro.Body]astro.CelestialPosition{astro.Sun: {Body: astro.Sun, Longitude: 62.2}},
			Houses:  astro.Houses{Cusps: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		},
		CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	_, err = repo.Save(ctx, in)
	require.NoError(t, err)

	out, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, in, out)

	out.NatalChart.Planets[astro.Sun] = astro.CelestialPosition{}
	again, _, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 62.2, again.NatalChart.Planets[astro.Sun].Longitude)
}
