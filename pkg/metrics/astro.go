package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for engine computations.
const (
	ResultOK           = "ok"
	ResultInsufficient = "insufficient"
	ResultFailed       = "failed"
)

// Astro holds the collectors exported by the astrology engine.
type Astro struct {
	natalCharts     *prometheus.CounterVec
	transitRankings *prometheus.CounterVec
	ephemerisQuery  *prometheus.HistogramVec
}

// NewAstro registers the engine collectors on reg.
func NewAstro(reg prometheus.Registerer) *Astro {
	m := &Astro{
		natalCharts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "morpheus",
			Name:      "natal_charts_total",
			Help:      "Natal chart computations by outcome.",
		}, []string{"result"}),
		transitRankings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "morpheus",
			Name:      "transit_rankings_total",
			Help:      "Transit aspect rankings by outcome.",
		}, []string{"result"}),
		ephemerisQuery: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "morpheus",
			Name:      "ephemeris_query_seconds",
			Help:      "Latency of single ephemeris position queries.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"body"}),
	}
	if reg != nil {
		reg.MustRegister(m.natalCharts, m.transitRankings, m.ephemerisQuery)
	}
	return m
}

// NatalChart counts one natal chart computation.
func (m *Astro) NatalChart(result string) {
	if m == nil {
		return
	}
	m.natalCharts.WithLabelValues(result).Inc()
}

// TransitRanking counts one transit ranking.
func (m *Astro) TransitRanking(result string) {
	if m == nil {
		return
	}
	m.transitRankings.WithLabelValues(result).Inc()
}

// ObserveQuery records the latency of one ephemeris lookup.
func (m *Astro) ObserveQuery(body string, started time.Time) {
	if m == nil {
		return
	}
	m.ephemerisQuery.WithLabelValues(body).Observe(time.Since(started).Seconds())
}
