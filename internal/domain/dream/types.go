package dream

import (
	"context"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
)

// Config controls dream listing and validation.
type Config struct {
	DefaultListLimit int
	MaxListLimit     int
	MaxNarrative     int
}

// Dream is a journal entry with the astrology attached at creation time.
type Dream struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Narrative string    `json:"narrative"`
	Astrology Astrology `json:"astrology"`
	CreatedAt time.Time `json:"createdAt"`
}

// Astrology is the context handed to prompt assembly. Each part degrades to
// a placeholder on its own.
type Astrology struct {
	Atmosphere     *astro.Atmosphere    `json:"atmosphere,omitempty"`
	AtmosphereNote string               `json:"atmosphereNote,omitempty"`
	Transits       astro.TransitReport  `json:"transits"`
	Passport       astro.CosmicPassport `json:"passport"`
	Context        string               `json:"context"`
}

// CreateDreamRequest is the payload for recording a dream.
type CreateDreamRequest struct {
	Date      string `json:"date"`
	Title     string `json:"title"`
	Narrative string `json:"narrative"`
}

// ListFilter narrows a listing to an inclusive date range.
type ListFilter struct {
	From  string
	To    string
	Limit int
}

// Repository abstracts dream persistence.
type Repository interface {
	Create(ctx context.Context, d Dream) (Dream, error)
	Get(ctx context.Context, userID, id string) (Dream, bool, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]Dream, error)
}

// ProfileReader exposes stored profiles to the dream service.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (profile.Profile, bool, error)
}
