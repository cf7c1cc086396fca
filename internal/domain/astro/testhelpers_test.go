package astro

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

type stubEphemeris struct {
	mu        sync.Mutex
	longitude map[Body]float64
	fail      map[Body]error
	calls     []stubCall
}

type stubCall struct {
	jd       float64
	body     Body
	flags    Flags
	observer *Observer
}

func newStubEphemeris(longitudes map[Body]float64) *stubEphemeris {
	return &stubEphemeris{longitude: longitudes, fail: map[Body]error{}}
}

func (s *stubEphemeris) Position(ctx context.Context, jd float64, body Body, flags Flags, observer *Observer) (CelestialPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var obs *Observer
	if observer != nil {
		clone := *observer
		obs = &clone
	}
	s.calls = append(s.calls, stubCall{jd: jd, body: body, flags: flags, observer: obs})
	if err := s.fail[body]; err != nil {
		return CelestialPosition{}, err
	}
	lon, ok := s.longitude[body]
	if !ok {
		return CelestialPosition{}, errors.New("no position")
	}
	return CelestialPosition{Body: body, Longitude: lon, Speed: 0.1}, nil
}

func (s *stubEphemeris) callsFor(body Body) []stubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []stubCall
	for _, c := range s.calls {
		if c.body == body {
			out = append(out, c)
		}
	}
	return out
}

type stubHouses struct {
	err      error
	cusps    []float64
	system   HouseSystem
	observer Observer
}

func (s *stubHouses) Houses(ctx context.Context, jd float64, observer Observer, system HouseSystem) (HouseResult, error) {
	s.system = system
	s.observer = observer
	if s.err != nil {
		return HouseResult{}, s.err
	}
	cusps := s.cusps
	if cusps == nil {
		cusps = make([]float64, 12)
		for i := range cusps {
			cusps[i] = float64(i*30) + 5
		}
	}
	return HouseResult{Cusps: cusps, Ascendant: cusps[0]}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floatPtr(v float64) *float64 {
	return &v
}

func chartWith(longitudes map[Body]float64) *NatalChart {
	chart := &NatalChart{Planets: map[Body]CelestialPosition{}}
	for body, lon := range longitudes {
		chart.Planets[body] = CelestialPosition{Body: body, Longitude: lon}
	}
	return chart
}
