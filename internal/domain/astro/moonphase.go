package astro

import "strings"

// MoonPhase is one of eight lunar phase buckets.
type MoonPhase struct {
	Index int    `json:"phase"`
	Name  string `json:"name"`
}

// GuideKey is the narrative lookup key for the phase.
func (p MoonPhase) GuideKey() string {
	return "moon_phase." + strings.ReplaceAll(strings.ToLower(p.Name), " ", "_")
}

var (
	NewMoon        = MoonPhase{Index: 0, Name: "New Moon"}
	WaxingCrescent = MoonPhase{Index: 1, Name: "Waxing Crescent"}
	FirstQuarter   = MoonPhase{Index: 2, Name: "First Quarter"}
	WaxingGibbous  = MoonPhase{Index: 3, Name: "Waxing Gibbous"}
	FullMoon       = MoonPhase{Index: 4, Name: "Full Moon"}
	WaningGibbous  = MoonPhase{Index: 5, Name: "Waning Gibbous"}
	LastQuarter    = MoonPhase{Index: 6, Name: "Last Quarter"}
	WaningCrescent = MoonPhase{Index: 7, Name: "Waning Crescent"}
)

// PhaseOf buckets the Moon–Sun elongation into 45° ranges. [180,225) has no
// bucket of its own and lands on Full Moon together with anything unmatched;
// downstream guide texts are keyed on this behavior.
func PhaseOf(moonLongitude, sunLongitude float64) MoonPhase {
	diff := Normalize(moonLongitude - sunLongitude)
	switch {
	case diff >= 0 && diff < 45:
		return NewMoon
	case diff >= 45 && diff < 90:
		return WaxingCrescent
	case diff >= 90 && diff < 135:
		return FirstQuarter
	case diff >= 135 && diff < 180:
		return WaxingGibbous
	case diff >= 225 && diff < 270:
		return WaningGibbous
	case diff >= 270 && diff < 315:
		return LastQuarter
	case diff >= 315 && diff < 360:
		return WaningCrescent
	default:
		return FullMoon
	}
}
