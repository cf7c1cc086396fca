package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// Cached memoizes geocentric positions. Topocentric queries depend on the
// observer and always go straight to the inner provider.
type Cached struct {
	inner  astro.EphemerisProvider
	cache  astro.PositionCache
	ttl    time.Duration
	logger *slog.Logger
}

var _ astro.EphemerisProvider = (*Cached)(nil)

// NewCached decorates inner with cache.
func NewCached(inner astro.EphemerisProvider, cache astro.PositionCache, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "ephemeris.cached"),
	}
}

// PositionKey identifies a geocentric query.
func PositionKey(jd float64, body astro.Body, flags astro.Flags) string {
	return fmt.Sprintf("pos:%s:%.6f:%d", body, jd, flags)
}

func (c *Cached) Position(ctx context.Context, jd float64, body astro.Body, flags astro.Flags, observer *astro.Observer) (astro.CelestialPosition, error) {
	if flags.Has(astro.FlagTopocentric) && observer != nil {
		return c.inner.Position(ctx, jd, body, flags, observer)
	}

	key := PositionKey(jd, body, flags)
	pos, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("position cache read failed", "key", key, "error", err)
	} else if ok {
		return pos, nil
	}

	pos, err = c.inner.Position(ctx, jd, body, flags, observer)
	if err != nil {
		return astro.CelestialPosition{}, err
	}
	if err := c.cache.Set(ctx, key, pos, c.ttl); err != nil {
		c.logger.Warn("position cache write failed", "key", key, "error", err)
	}
	return pos, nil
}
