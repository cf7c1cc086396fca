package dreamrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/dream"
)

// MemoryRepository provides an in-memory dream store for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	dreams map[string]dream.Dream
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{dreams: make(map[string]dream.Dream)}
}

func (r *MemoryRepository) Create(_ context.Context, d dream.Dream) (dream.Dream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dreams[d.ID] = d
	return d, nil
}

func (r *MemoryRepository) Get(_ context.Context, userID, id string) (dream.Dream, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dreams[id]
	if !ok || d.UserID != userID {
		return dream.Dream{}, false, nil
	}
	return d, true, nil
}

// List filters on the inclusive date range and orders newest first.
func (r *MemoryRepository) List(_ context.Context, userID string, filter dream.ListFilter) ([]dream.Dream, error) {
	r.mu.RLock()
	out := make([]dream.Dream, 0)
	for _, d := range r.dreams {
		if d.UserID != userID {
			continue
		}
		if filter.From != "" && d.Date < filter.From {
			continue
		}
		if filter.To != "" && d.Date > filter.To {
			continue
		}
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

var _ dream.Repository = (*MemoryRepository)(nil)
