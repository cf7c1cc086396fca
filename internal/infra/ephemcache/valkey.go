package ephemcache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"github.com/valkey-io/valkey-go"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

type kvStore interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string, ttl time.Duration) error
}

type valkeyKV struct {
	client valkey.Client
}

func (k valkeyKV) get(ctx context.Context, key string) (string, bool, error) {
	payload, err := k.client.Do(ctx, k.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (k valkeyKV) set(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := k.client.B().Set().Key(key).Value(value)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return k.client.Do(ctx, cmd).Error()
}

// ValkeyCache shares positions across instances through Valkey. Calls go
// through a circuit breaker; while it is open the cache reads as empty and
// writes are dropped.
type ValkeyCache struct {
	store   kvStore
	prefix  string
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewValkeyCache constructs a cache on top of client.
func NewValkeyCache(client valkey.Client, prefix string, breaker BreakerConfig, logger *slog.Logger) *ValkeyCache {
	return newValkeyCache(valkeyKV{client: client}, prefix, breaker, logger)
}

func newValkeyCache(store kvStore, prefix string, breaker BreakerConfig, logger *slog.Logger) *ValkeyCache {
	if prefix == "" {
		prefix = "morpheus"
	}
	if breaker.Name == "" {
		breaker.Name = "ephemeris-cache"
	}
	logger = logger.With("component", "ephemcache.valkey")
	return &ValkeyCache{
		store:   store,
		prefix:  prefix,
		breaker: newBreaker(breaker, logger),
		logger:  logger,
	}
}

// Get implements astro.PositionCache.
func (c *ValkeyCache) Get(ctx context.Context, key string) (astro.CelestialPosition, bool, error) {
	type hit struct {
		payload string
		ok      bool
	}
	res, err := c.breaker.Execute(func() (interface{}, error) {
		payload, ok, err := c.store.get(ctx, c.key(key))
		return hit{payload: payload, ok: ok}, err
	})
	if err != nil {
		if rejected(err) {
			return astro.CelestialPosition{}, false, nil
		}
		return astro.CelestialPosition{}, false, err
	}
	h := res.(hit)
	if !h.ok {
		return astro.CelestialPosition{}, false, nil
	}
	var pos astro.CelestialPosition
	if err := json.Unmarshal([]byte(h.payload), &pos); err != nil {
		return astro.CelestialPosition{}, false, err
	}
	return pos, true, nil
}

// Set implements astro.PositionCache.
func (c *ValkeyCache) Set(ctx context.Context, key string, pos astro.CelestialPosition, ttl time.Duration) error {
	payload, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.store.set(ctx, c.key(key), string(payload), ttl)
	})
	if rejected(err) {
		c.logger.Debug("position cache write skipped", "key", key, "state", c.breaker.State().String())
		return nil
	}
	return err
}

func (c *ValkeyCache) key(key string) string {
	return c.prefix + ":" + key
}

func rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

var _ astro.PositionCache = (*ValkeyCache)(nil)
