package astro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhaseOfBoundaries(t *testing.T) {
	tests := []struct {
		diff float64
		want MoonPhase
	}{
		{0, NewMoon},
		{44.999, NewMoon},
		{45, WaxingCrescent},
		{90, FirstQuarter},
		{135, WaxingGibbous},
		{179.999, WaxingGibbous},
		{180, FullMoon},
		{200, FullMoon},
		{224.999, FullMoon},
		{225, WaningGibbous},
		{270, LastQuarter},
		{315, WaningCrescent},
		{359.999, WaningCrescent},
	}
	for _, tc := range tests {
		got := PhaseOf(tc.diff, 0)
		require.Equal(t, tc.want, got, "diff %v", tc.diff)
	}
}

func TestPhaseOfUsesDifferenceModulo360(t *testing.T) {
	// moon 10°, sun 300° -> diff 70°
	require.Equal(t, WaxingCrescent, PhaseOf(10, 300))
	// moon 300°, sun 10° -> diff 290°
	require.Equal(t, LastQuarter, PhaseOf(300, 10))
}

func TestPhaseOfAlwaysOneOfEight(t *testing.T) {
	seen := map[int]bool{}
	for diff := 0.0; diff < 360; diff += 0.5 {
		phase := PhaseOf(diff, 0)
		require.GreaterOrEqual(t, phase.Index, 0)
		require.LessOrEqual(t, phase.Index, 7)
		seen[phase.Index] = true
	}
	require.Len(t, seen, 8)
}

func TestPhaseGuideKey(t *testing.T) {
	require.Equal(t, "moon_phase.waxing_crescent", WaxingCrescent.GuideKey())
	require.Equal(t, "moon_phase.full_moon", FullMoon.GuideKey())
}
