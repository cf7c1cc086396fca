package astro

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/FILIWILY/morpheus-dream-app-sub000/pkg/errors"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
)

// ErrInsufficientBirthData marks birth data that is missing or malformed.
var ErrInsufficientBirthData = errors.New("insufficient birth data")

var birthTimeLayouts = []string{"15:04", "15:04:05"}

// ValidBirthTime reports whether clock is an HH:MM or HH:MM:SS wall time.
func ValidBirthTime(clock string) bool {
	clock = strings.TrimSpace(clock)
	for _, layout := range birthTimeLayouts {
		if _, err := time.Parse(layout, clock); err == nil {
			return true
		}
	}
	return false
}

// NatalChartBuilder assembles a natal chart from birth data.
type NatalChartBuilder struct {
	query               positionQuerier
	houses              HouseProvider
	system              HouseSystem
	defaultLocation     *time.Location
	validateCoordinates bool
}

// NewNatalChartBuilder wires the builder. An invalid house system falls back to Placidus.
func NewNatalChartBuilder(ephemeris EphemerisProvider, houses HouseProvider, cfg Config, m *metrics.Astro) *NatalChartBuilder {
	system := cfg.HouseSystem
	if !system.Valid() {
		system = HousePlacidus
	}
	loc := time.UTC
	if name := strings.TrimSpace(cfg.DefaultTimezone); name != "" {
		if parsed, err := time.LoadLocation(name); err == nil {
			loc = parsed
		}
	}
	return &NatalChartBuilder{
		query:               positionQuerier{provider: ephemeris, metrics: m},
		houses:              houses,
		system:              system,
		defaultLocation:     loc,
		validateCoordinates: cfg.ValidateCoordinates,
	}
}

// Build computes the chart. Incomplete input yields ErrInsufficientBirthData and
// provider failures yield an ephemeris_unavailable AppError; callers that must
// stay non-fatal treat both as "no chart".
func (b *NatalChartBuilder) Build(ctx context.Context, in BirthData) (*NatalChart, error) {
	instant, observer, err := b.resolve(in)
	if err != nil {
		return nil, err
	}
	jd := JulianDay(instant)

	var (
		positions []CelestialPosition
		houses    HouseResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		positions, err = b.query.positions(gctx, jd, Bodies, FlagSpeed|FlagTopocentric, &observer)
		return err
	})
	g.Go(func() error {
		var err error
		houses, err = b.houses.Houses(gctx, jd, observer, b.system)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeEphemerisUnavailable, "house computation failed", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(houses.Cusps) != 12 {
		return nil, apperrors.Wrap(apperrors.CodeEphemerisUnavailable, "house provider returned malformed cusps", fmt.Errorf("got %d cusps", len(houses.Cusps)))
	}

	chart := &NatalChart{
		Planets:   make(map[Body]CelestialPosition, len(positions)),
		Houses:    Houses{Cusps: make([]float64, 12)},
		Ascendant: Ascendant{Longitude: Normalize(houses.Ascendant)},
	}
	for _, pos := range positions {
		chart.Planets[pos.Body] = pos
	}
	for i, cusp := range houses.Cusps {
		chart.Houses.Cusps[i] = Normalize(cusp)
	}
	return chart, nil
}

func (b *NatalChartBuilder) resolve(in BirthData) (time.Time, Observer, error) {
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	if date == "" || clock == "" || in.Latitude == nil || in.Longitude == nil {
		return time.Time{}, Observer{}, ErrInsufficientBirthData
	}

	loc := b.defaultLocation
	if name := strings.TrimSpace(in.Timezone); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			return time.Time{}, Observer{}, fmt.Errorf("%w: unknown timezone %q", ErrInsufficientBirthData, name)
		}
		loc = parsed
	}

	var (
		local time.Time
		err   error
	)
	for _, layout := range birthTimeLayouts {
		local, err = time.ParseInLocation("2006-01-02 "+layout, date+" "+clock, loc)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, Observer{}, fmt.Errorf("%w: %v", ErrInsufficientBirthData, err)
	}

	observer := Observer{Latitude: *in.Latitude, Longitude: *in.Longitude}
	if b.validateCoordinates && !validCoordinates(observer) {
		return time.Time{}, Observer{}, fmt.Errorf("%w: coordinates out of range", ErrInsufficientBirthData)
	}
	return local.UTC(), observer, nil
}

func validCoordinates(o Observer) bool {
	return o.Latitude >= -90 && o.Latitude <= 90 && o.Longitude >= -180 && o.Longitude <= 180
}
