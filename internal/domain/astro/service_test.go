package astro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
)

func newTestService(t *testing.T, eph *stubEphemeris, houses *stubHouses, cfg Config) (Service, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewService(cfg, eph, houses, nil, metrics.NewAstro(reg), newTestLogger()), reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "result" && label.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestServiceNatalChartReturnsNilOnMissingData(t *testing.T) {
	eph := newStubEphemeris(allBodies())
	svc, reg := newTestService(t, eph, &stubHouses{}, Config{})

	in := moscowBirth()
	in.Time = ""
	require.Nil(t, svc.NatalChart(context.Background(), in))
	require.Empty(t, eph.calls)
	require.Equal(t, 1.0, counterValue(t, reg, "morpheus_natal_charts_total", metrics.ResultInsufficient))
}

func TestServiceNatalChartReturnsNilOnProviderFailure(t *testing.T) {
	svc, reg := newTestService(t, newStubEphemeris(allBodies()), &stubHouses{err: errors.New("polar")}, Config{})

	require.Nil(t, svc.NatalChart(context.Background(), moscowBirth()))
	require.Equal(t, 1.0, counterValue(t, reg, "morpheus_natal_charts_total", metrics.ResultFailed))
}

func TestServiceNatalChart(t *testing.T) {
	svc, reg := newTestService(t, newStubEphemeris(allBodies()), &stubHouses{}, Config{})

	chart := svc.NatalChart(context.Background(), moscowBirth())
	require.NotNil(t, chart)
	require.Len(t, chart.Planets, 10)
	require.Equal(t, 1.0, counterValue(t, reg, "morpheus_natal_charts_total", metrics.ResultOK))
	require.Positive(t, testutil.CollectAndCount(reg, "morpheus_ephemeris_query_seconds"))
}

func TestServiceTransitsHonorsTopTransits(t *testing.T) {
	eph := newStubEphemeris(map[Body]float64{
		Jupiter: 10, Saturn: 10, Uranus: 10, Neptune: 10, Pluto: 10,
	})
	svc, reg := newTestService(t, eph, &stubHouses{}, Config{TopTransits: 2})

	report, err := svc.Transits(context.Background(), chartWith(map[Body]float64{Sun: 10}), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, report.Insights, 2)
	require.Equal(t, 1.0, counterValue(t, reg, "morpheus_transit_rankings_total", metrics.ResultOK))

	report, err = svc.Transits(context.Background(), nil, time.Now())
	require.NoError(t, err)
	require.True(t, report.Insufficient())
	require.Equal(t, 1.0, counterValue(t, reg, "morpheus_transit_rankings_total", metrics.ResultInsufficient))
}

func TestServiceTransitsFailure(t *testing.T) {
	eph := newStubEphemeris(map[Body]float64{Jupiter: 10})
	svc, reg := newTestService(t, eph, &stubHouses{}, Config{})

	_, err := svc.Transits(context.Background(), chartWith(map[Body]float64{Sun: 10}), time.Now())
	require.Error(t, err)
	require.Equal(t, 1.0, counterValue(t, reg, "morpheus_transit_rankings_total", metrics.ResultFailed))
}

func TestServiceAtmosphereAndPassport(t *testing.T) {
	svc, _ := newTestService(t, newStubEphemeris(map[Body]float64{Moon: 190, Sun: 10}), &stubHouses{}, Config{})

	atmosphere, err := svc.Atmosphere(context.Background(), time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, FullMoon.Name, atmosphere.MoonPhase.Name)
	require.Equal(t, "Libra", atmosphere.MoonSign.Name)

	passport := svc.Passport(chartWith(map[Body]float64{Sun: 62, Moon: 301}))
	require.True(t, passport.Available())
}
