package astro

import (
	"context"
	"errors"
	"time"
)

// ErrEphemerisUnavailable is wrapped by providers when the underlying model
// cannot answer a query.
var ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

// EphemerisProvider returns body positions. The observer is only consulted
// when FlagTopocentric is set; providers must not keep it between calls.
type EphemerisProvider interface {
	Position(ctx context.Context, jd float64, body Body, flags Flags, observer *Observer) (CelestialPosition, error)
}

// HouseProvider computes house cusps and the ascendant for a location.
type HouseProvider interface {
	Houses(ctx context.Context, jd float64, observer Observer, system HouseSystem) (HouseResult, error)
}

// PositionCache stores provider answers for observer-independent queries.
type PositionCache interface {
	Get(ctx context.Context, key string) (CelestialPosition, bool, error)
	Set(ctx context.Context, key string, pos CelestialPosition, ttl time.Duration) error
}

// ScoringSource hands out the scoring table in force at call time.
type ScoringSource interface {
	Scoring() ScoringTable
}
