package ephemeris

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

var moscow = astro.Observer{Latitude: 55.75, Longitude: 37.61}

func birthJD() float64 {
	return astro.JulianDay(time.Date(1990, 5, 23, 14, 30, 0, 0, time.UTC))
}

func requireQuadrantLayout(t *testing.T, res astro.HouseResult) {
	t.Helper()
	require.Len(t, res.Cusps, 12)
	require.Equal(t, res.Ascendant, res.Cusps[0])
	for i := 0; i < 6; i++ {
		require.InDelta(t, 180.0, astro.Separation(res.Cusps[i], res.Cusps[i+6]), 1e-9, "cusp %d", i+1)
	}
	for i := range res.Cusps {
		require.GreaterOrEqual(t, res.Cusps[i], 0.0)
		require.Less(t, res.Cusps[i], 360.0)
		step := astro.Normalize(res.Cusps[(i+1)%12] - res.Cusps[i])
		require.Greater(t, step, 0.0, "cusp %d", i+1)
		require.Less(t, step, 90.0, "cusp %d", i+1)
	}
}

func TestHousesPlacidus(t *testing.T) {
	res, err := NewAnalytical().Houses(context.Background(), birthJD(), moscow, astro.HousePlacidus)
	require.NoError(t, err)
	requireQuadrantLayout(t, res)

	require.InDelta(t, 210.53, res.Ascendant, 0.01)
	require.InDelta(t, 133.58, res.Cusps[9], 0.01)
	require.InDelta(t, 167.48, res.Cusps[10], 0.01)
	require.InDelta(t, 192.27, res.Cusps[11], 0.01)
	require.InDelta(t, 237.35, res.Cusps[1], 0.01)
	require.InDelta(t, 272.65, res.Cusps[2], 0.01)
}

func TestHousesPorphyry(t *testing.T) {
	res, err := NewAnalytical().Houses(context.Background(), birthJD(), moscow, astro.HousePorphyry)
	require.NoError(t, err)
	requireQuadrantLayout(t, res)

	upper := astro.Normalize(res.Cusps[0] - res.Cusps[9])
	require.InDelta(t, upper/3, astro.Normalize(res.Cusps[10]-res.Cusps[9]), 1e-9)
	require.InDelta(t, upper/3, astro.Normalize(res.Cusps[11]-res.Cusps[10]), 1e-9)
}

func TestHousesEqualAndWholeSign(t *testing.T) {
	provider := NewAnalytical()

	equal, err := provider.Houses(context.Background(), birthJD(), moscow, astro.HouseEqual)
	require.NoError(t, err)
	whole, err := provider.Houses(context.Background(), birthJD(), moscow, astro.HouseWholeSign)
	require.NoError(t, err)

	require.Equal(t, equal.Ascendant, whole.Ascendant)
	for i := range equal.Cusps {
		require.InDelta(t, astro.Normalize(equal.Ascendant+float64(i)*30), equal.Cusps[i], 1e-9)
		require.InDelta(t, astro.Normalize(210+float64(i)*30), whole.Cusps[i], 1e-9)
	}
}

func TestPlacidusFallsBackAbovePolarCircle(t *testing.T) {
	provider := NewAnalytical()
	north := astro.Observer{Latitude: 70, Longitude: 37.61}

	placidus, err := provider.Houses(context.Background(), birthJD(), north, astro.HousePlacidus)
	require.NoError(t, err)
	porphyry, err := provider.Houses(context.Background(), birthJD(), north, astro.HousePorphyry)
	require.NoError(t, err)
	require.Equal(t, porphyry, placidus)
}

func TestHousesAtEquatorAreFinite(t *testing.T) {
	res, err := NewAnalytical().Houses(context.Background(), astro.J2000, astro.Observer{}, astro.HousePlacidus)
	require.NoError(t, err)
	requireQuadrantLayout(t, res)
	for _, cusp := range res.Cusps {
		require.False(t, math.IsNaN(cusp))
	}
}
