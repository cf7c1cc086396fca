package ephemeris

import (
	"context"
	"sync"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// GlobalContextProvider is an ephemeris whose observer location is process
// state: it must be set before a topocentric query and holds until cleared.
type GlobalContextProvider interface {
	SetTopocentric(observer astro.Observer)
	ClearTopocentric()
	Calc(jd float64, body astro.Body, flags astro.Flags) (astro.CelestialPosition, error)
	Houses(jd float64, observer astro.Observer, system astro.HouseSystem) (astro.HouseResult, error)
}

// Serialized adapts a GlobalContextProvider to the per-call observer
// contract. Setting the location and querying happen under one lock, so two
// charts for different places never interleave.
type Serialized struct {
	mu    sync.Mutex
	inner GlobalContextProvider
}

var (
	_ astro.EphemerisProvider = (*Serialized)(nil)
	_ astro.HouseProvider     = (*Serialized)(nil)
)

// NewSerialized wraps inner.
func NewSerialized(inner GlobalContextProvider) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) Position(ctx context.Context, jd float64, body astro.Body, flags astro.Flags, observer *astro.Observer) (astro.CelestialPosition, error) {
	if err := ctx.Err(); err != nil {
		return astro.CelestialPosition{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if flags.Has(astro.FlagTopocentric) && observer != nil {
		s.inner.SetTopocentric(*observer)
		defer s.inner.ClearTopocentric()
	} else {
		flags &^= astro.FlagTopocentric
	}
	return s.inner.Calc(jd, body, flags)
}

func (s *Serialized) Houses(ctx context.Context, jd float64, observer astro.Observer, system astro.HouseSystem) (astro.HouseResult, error) {
	if err := ctx.Err(); err != nil {
		return astro.HouseResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Houses(jd, observer, system)
}

// Global exposes the analytical model through the global-context contract of
// classic ephemeris libraries. It is not safe for concurrent use on its own.
type Global struct {
	model    *Analytical
	observer *astro.Observer
}

var _ GlobalContextProvider = (*Global)(nil)

// NewGlobal wraps model.
func NewGlobal(model *Analytical) *Global {
	return &Global{model: model}
}

func (g *Global) SetTopocentric(observer astro.Observer) {
	g.observer = &observer
}

func (g *Global) ClearTopocentric() {
	g.observer = nil
}

func (g *Global) Calc(jd float64, body astro.Body, flags astro.Flags) (astro.CelestialPosition, error) {
	return g.model.Position(context.Background(), jd, body, flags, g.observer)
}

func (g *Global) Houses(jd float64, observer astro.Observer, system astro.HouseSystem) (astro.HouseResult, error) {
	return g.model.Houses(context.Background(), jd, observer, system)
}
