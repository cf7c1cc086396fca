package ephemeris

import (
	"context"
	"fmt"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// Analytical computes positions from closed-form orbital elements and a
// truncated lunar series. Planets land within about 0.2° of the JPL
// positions and the Moon within about 0.5°, which is ample for sign and
// aspect classification with degree-sized orbs.
type Analytical struct {
	minJD float64
	maxJD float64
}

var (
	_ astro.EphemerisProvider = (*Analytical)(nil)
	_ astro.HouseProvider     = (*Analytical)(nil)
)

// NewAnalytical returns a provider covering 1800-01-01 to 2050-12-31.
func NewAnalytical() *Analytical {
	return &Analytical{
		minJD: astro.JulianDay(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)),
		maxJD: astro.JulianDay(time.Date(2051, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

var planetElements = map[astro.Body]*orbitalElements{
	astro.Mercury: &mercuryElements,
	astro.Venus:   &venusElements,
	astro.Mars:    &marsElements,
	astro.Jupiter: &jupiterElements,
	astro.Saturn:  &saturnElements,
	astro.Uranus:  &uranusElements,
	astro.Neptune: &neptuneElements,
	astro.Pluto:   &plutoElements,
}

// Position implements astro.EphemerisProvider. Topocentric correction is
// applied to the Moon only; for the planets it stays below 10 arcseconds.
func (a *Analytical) Position(ctx context.Context, jd float64, body astro.Body, flags astro.Flags, observer *astro.Observer) (astro.CelestialPosition, error) {
	if err := ctx.Err(); err != nil {
		return astro.CelestialPosition{}, err
	}
	if err := a.checkRange(jd); err != nil {
		return astro.CelestialPosition{}, err
	}
	if !body.Valid() {
		return astro.CelestialPosition{}, fmt.Errorf("%w: unknown body %q", astro.ErrEphemerisUnavailable, body)
	}
	if observer != nil {
		if err := checkObserver(*observer); err != nil {
			return astro.CelestialPosition{}, err
		}
	}
	if !flags.Has(astro.FlagTopocentric) {
		observer = nil
	}

	pos := astro.CelestialPosition{Body: body, Longitude: longitude(jd, body, observer)}
	if flags.Has(astro.FlagSpeed) {
		pos.Speed = wrap180(longitude(jd+0.5, body, observer) - longitude(jd-0.5, body, observer))
	}
	return pos, nil
}

// Houses implements astro.HouseProvider.
func (a *Analytical) Houses(ctx context.Context, jd float64, observer astro.Observer, system astro.HouseSystem) (astro.HouseResult, error) {
	if err := ctx.Err(); err != nil {
		return astro.HouseResult{}, err
	}
	if err := a.checkRange(jd); err != nil {
		return astro.HouseResult{}, err
	}
	if err := checkObserver(observer); err != nil {
		return astro.HouseResult{}, err
	}
	if !system.Valid() {
		return astro.HouseResult{}, fmt.Errorf("%w: unsupported house system %q", astro.ErrEphemerisUnavailable, system)
	}
	return computeHouses(jd, observer, system), nil
}

func (a *Analytical) checkRange(jd float64) error {
	if jd < a.minJD || jd >= a.maxJD {
		return fmt.Errorf("%w: julian day %.1f outside 1800-2050", astro.ErrEphemerisUnavailable, jd)
	}
	return nil
}

func checkObserver(o astro.Observer) error {
	if o.Latitude < -90 || o.Latitude > 90 || o.Longitude < -180 || o.Longitude > 180 {
		return fmt.Errorf("%w: observer %.4f,%.4f out of range", astro.ErrEphemerisUnavailable, o.Latitude, o.Longitude)
	}
	return nil
}

func longitude(jd float64, body astro.Body, observer *astro.Observer) float64 {
	switch body {
	case astro.Sun:
		return geocentricLongitude(nil, jd)
	case astro.Moon:
		lon, lat, parallax := moonEcliptic(jd)
		if observer == nil {
			return lon
		}
		return topocentricMoon(jd, lon, lat, parallax, observer.Latitude, observer.Longitude)
	default:
		return geocentricLongitude(planetElements[body], jd)
	}
}
