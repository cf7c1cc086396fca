package astro

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/util"
)

// DefaultTopTransits is the number of insights returned when the caller asks for none.
const DefaultTopTransits = 3

// TransitExplanation accompanies every computed transit report.
const TransitExplanation = "Transits compare where the slow planets (Jupiter to Pluto) stood on the dream date " +
	"with your natal chart. The strongest contacts are listed first: heavier planets, tighter orbs " +
	"and contacts to the natal Moon weigh more."

// MsgInsufficientNatalData is reported when a chart is missing or empty.
const MsgInsufficientNatalData = "Natal chart is not available: complete birth date, time and place in the profile to see personal transits."

// Separation is the shorter-arc angle between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	angle := math.Abs(Normalize(a) - Normalize(b))
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}

// MatchAspect returns the first major aspect within orb of the separation
// between two longitudes.
func MatchAspect(a, b, orb float64) (AspectDef, float64, bool) {
	angle := Separation(a, b)
	for _, aspect := range MajorAspects {
		delta := math.Abs(angle - aspect.Angle)
		if delta <= orb {
			return aspect, delta, true
		}
	}
	return AspectDef{}, 0, false
}

type rankedAspect struct {
	TransitAspect
	transitIdx int
	natalIdx   int
}

// FindAspects enumerates every (transit body, natal body) pair that forms a
// major aspect and returns them ordered by score descending. Ties keep
// enumeration order: transit body, then natal body in canonical order. An orb
// of at most 10° lets no pair match more than one aspect.
func FindAspects(transits []CelestialPosition, chart *NatalChart, table ScoringTable) []TransitAspect {
	var matches []rankedAspect
	for ti, transit := range transits {
		for ni, natalBody := range Bodies {
			natal, ok := chart.Position(natalBody)
			if !ok {
				continue
			}
			aspect, orb, ok := MatchAspect(transit.Longitude, natal.Longitude, table.Orb)
			if !ok {
				continue
			}
			matches = append(matches, rankedAspect{
				TransitAspect: TransitAspect{
					TransitBody: transit.Body,
					NatalBody:   natalBody,
					AspectType:  aspect.Type,
					Orb:         orb,
					Score:       table.Score(transit.Body, natalBody, aspect.Type, orb),
				},
				transitIdx: ti,
				natalIdx:   ni,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.transitIdx != b.transitIdx {
			return a.transitIdx < b.transitIdx
		}
		return a.natalIdx < b.natalIdx
	})

	out := make([]TransitAspect, len(matches))
	for i, m := range matches {
		out[i] = m.TransitAspect
	}
	return out
}

// TransitEngine ranks slow-planet transits against a natal chart.
type TransitEngine struct {
	query   positionQuerier
	scoring ScoringSource
}

// NewTransitEngine wires the engine. A nil scoring source uses DefaultScoring.
func NewTransitEngine(ephemeris EphemerisProvider, scoring ScoringSource, m *metrics.Astro) *TransitEngine {
	if scoring == nil {
		scoring = NewStaticScoring(DefaultScoring())
	}
	return &TransitEngine{
		query:   positionQuerier{provider: ephemeris, metrics: m},
		scoring: scoring,
	}
}

// Rank returns the topN strongest transits for the UTC calendar day of target.
// A missing or empty chart yields an insufficient report, never an error; a
// failing ephemeris query fails the whole ranking.
func (e *TransitEngine) Rank(ctx context.Context, chart *NatalChart, target time.Time, topN int) (TransitReport, error) {
	if chart == nil || len(chart.Planets) == 0 {
		return TransitReport{Error: MsgInsufficientNatalData}, nil
	}
	if topN <= 0 {
		topN = DefaultTopTransits
	}

	midnight := util.MidnightUTC(target)
	transits, err := e.query.positions(ctx, JulianDay(midnight), SlowBodies, FlagSpeed, nil)
	if err != nil {
		return TransitReport{}, err
	}

	aspects := FindAspects(transits, chart, e.scoring.Scoring())
	if len(aspects) > topN {
		aspects = aspects[:topN]
	}
	return TransitReport{Insights: aspects, Explanation: TransitExplanation}, nil
}
