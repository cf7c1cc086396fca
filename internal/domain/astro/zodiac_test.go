package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignOfBoundaries(t *testing.T) {
	tests := []struct {
		longitude float64
		index     int
		name      string
	}{
		{0, 0, "Aries"},
		{29.999, 0, "Aries"},
		{30, 1, "Taurus"},
		{359.999, 11, "Pisces"},
		{360, 0, "Aries"},
		{-0.5, 11, "Pisces"},
		{725, 0, "Aries"},
	}
	for _, tc := range tests {
		sign := SignOf(tc.longitude)
		require.Equal(t, tc.index, sign.Index, "longitude %v", tc.longitude)
		require.Equal(t, tc.name, sign.Name)
	}
}

func TestSignOfMatchesFloor(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 0.25 {
		require.Equal(t, int(math.Floor(lon/30)), SignOf(lon).Index)
	}
}

func TestSignGuideKey(t *testing.T) {
	require.Equal(t, "sign.sagittarius", SignOf(250).GuideKey())
	require.Equal(t, "sign.pisces", SignOf(359.5).GuideKey())
}

func TestNormalize(t *testing.T) {
	require.Equal(t, 0.0, Normalize(360))
	require.Equal(t, 350.0, Normalize(-10))
	require.Equal(t, 10.0, Normalize(730))
	require.Equal(t, 0.0, Normalize(-1e-18))
}
