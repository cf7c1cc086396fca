package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"j2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"sputnik", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 2460369.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, JulianDay(tc.at), 1e-6)
		})
	}
}

func TestJulianDayIgnoresZone(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	local := time.Date(1990, 5, 23, 14, 30, 0, 0, moscow)
	require.Equal(t, JulianDay(local.UTC()), JulianDay(local))
}

func TestCenturies(t *testing.T) {
	require.Zero(t, Centuries(J2000))
	require.InDelta(t, 1.0, Centuries(J2000+36525), 1e-12)
}
