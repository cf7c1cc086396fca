package ephemcache

import (
	"context"
	"sync"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

type entry struct {
	pos       astro.CelestialPosition
	expiresAt time.Time
}

// MemoryCache keeps positions in process memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements astro.PositionCache.
func (c *MemoryCache) Get(_ context.Context, key string) (astro.CelestialPosition, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return astro.CelestialPosition{}, false, nil
	}
	if !e.expiresAt.IsZero() && e.expiresAt.Before(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return astro.CelestialPosition{}, false, nil
	}
	return e.pos, true, nil
}

// Set implements astro.PositionCache. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, pos astro.CelestialPosition, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry{pos: pos, expiresAt: exp}
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ astro.PositionCache = (*MemoryCache)(nil)
