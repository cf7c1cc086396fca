package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

func TestAnalyticalPositionsAtJ2000(t *testing.T) {
	provider := NewAnalytical()
	ctx := context.Background()

	// Reference longitudes for 2000-01-01 12:00 TT.
	tests := []struct {
		body  astro.Body
		want  float64
		delta float64
	}{
		{astro.Sun, 280.37, 0.05},
		{astro.Moon, 223.32, 0.5},
		{astro.Mercury, 271.89, 0.1},
		{astro.Venus, 241.57, 0.1},
		{astro.Mars, 327.96, 0.1},
		{astro.Jupiter, 25.25, 0.2},
		{astro.Saturn, 40.39, 0.2},
		{astro.Uranus, 314.81, 0.1},
		{astro.Neptune, 303.19, 0.1},
		{astro.Pluto, 251.45, 0.1},
	}
	for _, tc := range tests {
		t.Run(string(tc.body), func(t *testing.T) {
			pos, err := provider.Position(ctx, astro.J2000, tc.body, 0, nil)
			require.NoError(t, err)
			require.Equal(t, tc.body, pos.Body)
			require.InDelta(t, tc.want, pos.Longitude, tc.delta)
			require.Zero(t, pos.Speed)
		})
	}
}

func TestAnalyticalSpeed(t *testing.T) {
	provider := NewAnalytical()

	sun, err := provider.Position(context.Background(), astro.J2000, astro.Sun, astro.FlagSpeed, nil)
	require.NoError(t, err)
	require.InDelta(t, 1.019, sun.Speed, 0.01)

	moon, err := provider.Position(context.Background(), astro.J2000, astro.Moon, astro.FlagSpeed, nil)
	require.NoError(t, err)
	require.Greater(t, moon.Speed, 11.0)
	require.Less(t, moon.Speed, 16.0)
}

func TestAnalyticalTopocentricMoon(t *testing.T) {
	provider := NewAnalytical()
	jd := astro.JulianDay(time.Date(1990, 5, 23, 14, 30, 0, 0, time.UTC))
	observer := &astro.Observer{Latitude: 55.75, Longitude: 37.61}

	geo, err := provider.Position(context.Background(), jd, astro.Moon, 0, observer)
	require.NoError(t, err)
	topo, err := provider.Position(context.Background(), jd, astro.Moon, astro.FlagTopocentric, observer)
	require.NoError(t, err)

	shift := astro.Separation(geo.Longitude, topo.Longitude)
	require.Greater(t, shift, 0.1)
	require.Less(t, shift, 1.1)

	sunGeo, err := provider.Position(context.Background(), jd, astro.Sun, 0, nil)
	require.NoError(t, err)
	sunTopo, err := provider.Position(context.Background(), jd, astro.Sun, astro.FlagTopocentric, observer)
	require.NoError(t, err)
	require.Equal(t, sunGeo.Longitude, sunTopo.Longitude)
}

func TestAnalyticalRange(t *testing.T) {
	provider := NewAnalytical()
	ctx := context.Background()

	for _, at := range []time.Time{
		time.Date(1799, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2051, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := provider.Position(ctx, astro.JulianDay(at), astro.Sun, 0, nil)
		require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)

		_, err = provider.Houses(ctx, astro.JulianDay(at), astro.Observer{}, astro.HousePlacidus)
		require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)
	}

	_, err := provider.Position(ctx, astro.JulianDay(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)), astro.Sun, 0, nil)
	require.NoError(t, err)
	_, err = provider.Position(ctx, astro.JulianDay(time.Date(2050, 12, 31, 23, 0, 0, 0, time.UTC)), astro.Sun, 0, nil)
	require.NoError(t, err)
}

func TestAnalyticalRejectsBadInput(t *testing.T) {
	provider := NewAnalytical()
	ctx := context.Background()

	_, err := provider.Position(ctx, astro.J2000, astro.Body("chiron"), 0, nil)
	require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)

	_, err = provider.Position(ctx, astro.J2000, astro.Moon, astro.FlagTopocentric, &astro.Observer{Latitude: 95})
	require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)

	_, err = provider.Houses(ctx, astro.J2000, astro.Observer{}, astro.HouseSystem("koch"))
	require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = provider.Position(cancelled, astro.J2000, astro.Sun, 0, nil)
	require.ErrorIs(t, err, context.Canceled)
}
