package profile

import (
	"context"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// Profile is a user's stored birth data with the natal chart derived from it.
// NatalChart is nil whenever the birth data is incomplete.
type Profile struct {
	UserID     string            `json:"userId"`
	Name       string            `json:"name,omitempty"`
	Birth      astro.BirthData   `json:"birth"`
	NatalChart *astro.NatalChart `json:"natalChart"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// UpdateProfileRequest carries a partial update. Nil fields are left as they
// are; an empty string clears a text field.
type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	BirthDate *string  `json:"birthDate"`
	BirthTime *string  `json:"birthTime"`
	Timezone  *string  `json:"timezone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// ClearLocation drops stored coordinates.
	ClearLocation bool `json:"clearLocation"`
}

// Repository abstracts profile persistence.
type Repository interface {
	Get(ctx context.Context, userID string) (Profile, bool, error)
	Save(ctx context.Context, p Profile) (Profile, error)
}
