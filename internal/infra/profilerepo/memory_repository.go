package profilerepo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
)

// MemoryRepository provides an in-memory profile store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string][]byte)}
}

// Get returns a deep copy so callers never share chart maps with the store.
func (r *MemoryRepository) Get(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	raw, ok := r.profiles[userID]
	r.mu.RUnlock()
	if !ok {
		return profile.Profile{}, false, nil
	}
	var p profile.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

// Save upserts the profile.
func (r *MemoryRepository) Save(_ context.Context, p profile.Profile) (profile.Profile, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return profile.Profile{}, err
	}
	r.mu.Lock()
	r.profiles[p.UserID] = raw
	r.mu.Unlock()
	return p, nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
