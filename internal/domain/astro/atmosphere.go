package astro

import (
	"context"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/util"
)

// AtmosphereOf classifies geocentric Moon and Sun positions into the lunar
// snapshot of a dream.
func AtmosphereOf(date time.Time, moon, sun CelestialPosition) Atmosphere {
	phase := PhaseOf(moon.Longitude, sun.Longitude)
	sign := SignOf(moon.Longitude)
	return Atmosphere{
		Date: date.UTC().Format(util.DateLayout),
		MoonPhase: PhaseView{
			Name:     phase.Name,
			Phase:    phase.Index,
			GuideKey: phase.GuideKey(),
		},
		MoonSign: SignView{
			Name:     sign.Name,
			Symbol:   sign.Symbol,
			GuideKey: sign.GuideKey(),
		},
	}
}

func (q positionQuerier) atmosphere(ctx context.Context, date time.Time) (Atmosphere, error) {
	midnight := util.MidnightUTC(date)
	positions, err := q.positions(ctx, JulianDay(midnight), []Body{Moon, Sun}, 0, nil)
	if err != nil {
		return Atmosphere{}, err
	}
	return AtmosphereOf(midnight, positions[0], positions[1]), nil
}
