package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
)

type profileRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=120"`
	BirthDate     *string  `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	BirthTime     *string  `json:"birthTime" validate:"omitempty,birthtime"`
	Timezone      *string  `json:"timezone" validate:"omitempty,max=64"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ClearLocation bool     `json:"clearLocation"`
}

func (r profileRequest) toDomain() profile.UpdateProfileRequest {
	return profile.UpdateProfileRequest{
		Name:          r.Name,
		BirthDate:     r.BirthDate,
		BirthTime:     r.BirthTime,
		Timezone:      r.Timezone,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		ClearLocation: r.ClearLocation,
	}
}

// GetProfile returns the stored profile with its natal chart.
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.profileSvc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveProfile merges the submitted fields and recomputes the natal chart.
func (h *Handler) SaveProfile(c *gin.Context) {
	var req profileRequest
	if !h.bind(c, &req) {
		return
	}
	p, err := h.profileSvc.Save(c.Request.Context(), c.Param("userId"), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Passport returns the Sun/Moon passport; an incomplete profile yields the
// passport's error field rather than an HTTP error.
func (h *Handler) Passport(c *gin.Context) {
	passport, err := h.profileSvc.Passport(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, passport)
}

// Transits ranks the transits for ?date= (default today) against the user's chart.
func (h *Handler) Transits(c *gin.Context) {
	date, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}
	report, err := h.profileSvc.Transits(c.Request.Context(), c.Param("userId"), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
