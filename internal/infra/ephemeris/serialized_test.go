package ephemeris

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// racyGlobal answers with the latitude of whatever observer is currently set
// and flags any overlapping use of its global state.
type racyGlobal struct {
	observer   *astro.Observer
	inFlight   atomic.Int32
	overlapped atomic.Bool
	cleared    atomic.Int32
}

func (g *racyGlobal) SetTopocentric(observer astro.Observer) {
	if g.inFlight.Add(1) > 1 {
		g.overlapped.Store(true)
	}
	g.observer = &observer
}

func (g *racyGlobal) ClearTopocentric() {
	g.observer = nil
	g.cleared.Add(1)
	g.inFlight.Add(-1)
}

func (g *racyGlobal) Calc(jd float64, body astro.Body, flags astro.Flags) (astro.CelestialPosition, error) {
	time.Sleep(100 * time.Microsecond)
	if !flags.Has(astro.FlagTopocentric) {
		return astro.CelestialPosition{Body: body, Longitude: -1}, nil
	}
	if g.observer == nil {
		return astro.CelestialPosition{}, errors.New("no observer set")
	}
	return astro.CelestialPosition{Body: body, Longitude: g.observer.Latitude}, nil
}

func (g *racyGlobal) Houses(jd float64, observer astro.Observer, system astro.HouseSystem) (astro.HouseResult, error) {
	return astro.HouseResult{Cusps: make([]float64, 12), Ascendant: observer.Latitude}, nil
}

func TestSerializedDoesNotInterleaveObservers(t *testing.T) {
	inner := &racyGlobal{}
	provider := NewSerialized(inner)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(lat float64) {
			defer wg.Done()
			pos, err := provider.Position(context.Background(), astro.J2000, astro.Moon, astro.FlagTopocentric, &astro.Observer{Latitude: lat})
			if err != nil {
				errs <- err
				return
			}
			if pos.Longitude != lat {
				errs <- errors.New("observer leaked between queries")
			}
		}(float64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.False(t, inner.overlapped.Load())
	require.EqualValues(t, 40, inner.cleared.Load())
	require.Nil(t, inner.observer)
}

func TestSerializedGeocentricSkipsContext(t *testing.T) {
	inner := &racyGlobal{}
	provider := NewSerialized(inner)

	pos, err := provider.Position(context.Background(), astro.J2000, astro.Sun, astro.FlagTopocentric, nil)
	require.NoError(t, err)
	require.Equal(t, -1.0, pos.Longitude)
	require.Zero(t, inner.cleared.Load())
}

func TestSerializedOverAnalyticalMatchesPerCall(t *testing.T) {
	analytical := NewAnalytical()
	provider := NewSerialized(NewGlobal(analytical))
	jd := birthJD()

	for _, body := range astro.Bodies {
		want, err := analytical.Position(context.Background(), jd, body, astro.FlagSpeed|astro.FlagTopocentric, &moscow)
		require.NoError(t, err)
		got, err := provider.Position(context.Background(), jd, body, astro.FlagSpeed|astro.FlagTopocentric, &moscow)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	wantHouses, err := analytical.Houses(context.Background(), jd, moscow, astro.HousePlacidus)
	require.NoError(t, err)
	gotHouses, err := provider.Houses(context.Background(), jd, moscow, astro.HousePlacidus)
	require.NoError(t, err)
	require.Equal(t, wantHouses, gotHouses)
}
