package astro

import "encoding/json"

// Body identifies one of the ten charted celestial bodies.
type Body string

const (
	Sun     Body = "sun"
	Moon    Body = "moon"
	Mercury Body = "mercury"
	Venus   Body = "venus"
	Mars    Body = "mars"
	Jupiter Body = "jupiter"
	Saturn  Body = "saturn"
	Uranus  Body = "uranus"
	Neptune Body = "neptune"
	Pluto   Body = "pluto"
)

// Bodies lists every charted body in canonical order. The order doubles as the
// natal-body tie-break key when ranking transits.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// SlowBodies are the transiting bodies considered by the transit ranking.
var SlowBodies = []Body{Jupiter, Saturn, Uranus, Neptune, Pluto}

// Index returns the canonical position of b, or -1 for unknown bodies.
func (b Body) Index() int {
	for i, candidate := range Bodies {
		if candidate == b {
			return i
		}
	}
	return -1
}

// Valid reports whether b is one of the charted bodies.
func (b Body) Valid() bool {
	return b.Index() >= 0
}

// Flags tune a single ephemeris query.
type Flags uint

const (
	// FlagSpeed asks the provider to fill CelestialPosition.Speed.
	FlagSpeed Flags = 1 << iota
	// FlagTopocentric asks for positions as seen from the supplied observer.
	FlagTopocentric
)

// Has reports whether every bit of other is set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// Observer is a geographic location on Earth, degrees, east and north positive.
type Observer struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CelestialPosition is the ecliptic longitude of a body at one instant.
type CelestialPosition struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
}

// HouseSystem names the algorithm used to divide the chart into houses.
type HouseSystem string

const (
	HousePlacidus  HouseSystem = "placidus"
	HousePorphyry  HouseSystem = "porphyry"
	HouseEqual     HouseSystem = "equal"
	HouseWholeSign HouseSystem = "whole_sign"
)

// Valid reports whether the system is supported.
func (h HouseSystem) Valid() bool {
	switch h {
	case HousePlacidus, HousePorphyry, HouseEqual, HouseWholeSign:
		return true
	default:
		return false
	}
}

// HouseResult is what a HouseProvider returns: twelve cusps starting at house 1.
type HouseResult struct {
	Cusps     []float64
	Ascendant float64
}

// Houses holds the twelve house cusps of a natal chart.
type Houses struct {
	Cusps []float64 `json:"cusps"`
}

// Ascendant is the rising point of a natal chart.
type Ascendant struct {
	Longitude float64 `json:"longitude"`
}

// NatalChart is the snapshot of the sky for one birth event. It is computed once
// per birth-data submission and never patched.
type NatalChart struct {
	Planets   map[Body]CelestialPosition `json:"planets"`
	Houses    Houses                     `json:"houses"`
	Ascendant Ascendant                  `json:"ascendant"`
}

// Position returns the natal position of b when present.
func (c *NatalChart) Position(b Body) (CelestialPosition, bool) {
	if c == nil || c.Planets == nil {
		return CelestialPosition{}, false
	}
	pos, ok := c.Planets[b]
	return pos, ok
}

// BirthData is the raw birth profile as entered by the user. Date and time are
// local civil values in Timezone.
type BirthData struct {
	Date      string   `json:"birthDate"`
	Time      string   `json:"birthTime"`
	Timezone  string   `json:"timezone,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AspectType names a major angular relationship.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Opposition  AspectType = "opposition"
)

// AspectDef pairs an aspect with its exact angle.
type AspectDef struct {
	Type  AspectType
	Angle float64
}

// MajorAspects are checked in this order; the order is the last tie-break key.
var MajorAspects = []AspectDef{
	{Type: Conjunction, Angle: 0},
	{Type: Sextile, Angle: 60},
	{Type: Square, Angle: 90},
	{Type: Trine, Angle: 120},
	{Type: Opposition, Angle: 180},
}

// TransitAspect is one scored contact between a transiting and a natal body.
type TransitAspect struct {
	TransitBody Body       `json:"transitBody"`
	NatalBody   Body       `json:"natalBody"`
	AspectType  AspectType `json:"aspectType"`
	Orb         float64    `json:"orb"`
	Score       int        `json:"score"`
}

// TransitReport is either a ranked list of insights or an unavailability message.
type TransitReport struct {
	Insights    []TransitAspect `json:"insights"`
	Explanation string          `json:"explanation,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Insufficient reports whether the ranking could not be computed.
func (r TransitReport) Insufficient() bool {
	return r.Error != ""
}

// MarshalJSON renders {error} for unavailable reports and {insights, explanation}
// otherwise, with an empty list rather than null when nothing matched.
func (r TransitReport) MarshalJSON() ([]byte, error) {
	if r.Insufficient() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}
	insights := r.Insights
	if insights == nil {
		insights = []TransitAspect{}
	}
	type plain TransitReport
	return json.Marshal(plain{Insights: insights, Explanation: r.Explanation})
}

// SignPlacement is a zodiac sign attached to a body, with its narrative lookup key.
type SignPlacement struct {
	Sign     string `json:"sign"`
	Symbol   string `json:"symbol"`
	GuideKey string `json:"guideKey"`
}

// CosmicPassport is the Sun/Moon identity capsule derived from a natal chart.
type CosmicPassport struct {
	Sun   *SignPlacement `json:"sun,omitempty"`
	Moon  *SignPlacement `json:"moon,omitempty"`
	Error string         `json:"error,omitempty"`
}

// Available reports whether both placements were computed.
func (p CosmicPassport) Available() bool {
	return p.Error == "" && p.Sun != nil && p.Moon != nil
}

// PhaseView describes the lunar phase of a dream date.
type PhaseView struct {
	Name     string `json:"name"`
	Phase    int    `json:"phase"`
	GuideKey string `json:"guideKey"`
}

// SignView describes the Moon's sign on a dream date.
type SignView struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	GuideKey string `json:"guideKey"`
}

// Atmosphere is the date-only lunar snapshot of a dream.
type Atmosphere struct {
	Date      string    `json:"date"`
	MoonPhase PhaseView `json:"moonPhase"`
	MoonSign  SignView  `json:"moonSign"`
}

// Config wires runtime knobs for the astrology domain.
type Config struct {
	HouseSystem         HouseSystem
	TopTransits         int
	DefaultTimezone     string
	ValidateCoordinates bool
}
