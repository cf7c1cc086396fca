package astro

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/FILIWILY/morpheus-dream-app-sub000/pkg/errors"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
)

// positionQuerier fans independent position lookups out concurrently. Any
// failing body fails the whole batch.
type positionQuerier struct {
	provider EphemerisProvider
	metrics  *metrics.Astro
}

func (q positionQuerier) positions(ctx context.Context, jd float64, bodies []Body, flags Flags, observer *Observer) ([]CelestialPosition, error) {
	out := make([]CelestialPosition, len(bodies))
	g, gctx := errgroup.WithContext(ctx)
	for i, body := range bodies {
		g.Go(func() error {
			started := time.Now()
			pos, err := q.provider.Position(gctx, jd, body, flags, observer)
			q.metrics.ObserveQuery(string(body), started)
			if err != nil {
				return fmt.Errorf("%s: %w", body, err)
			}
			pos.Body = body
			pos.Longitude = Normalize(pos.Longitude)
			out[i] = pos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeEphemerisUnavailable, "ephemeris query failed", err)
	}
	return out, nil
}
