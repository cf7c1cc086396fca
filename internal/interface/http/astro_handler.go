package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

const msgChartUnavailable = "Natal chart could not be computed from the supplied birth data."

type natalRequest struct {
	BirthDate string   `json:"birthDate" validate:"required,datetime=2006-01-02"`
	BirthTime string   `json:"birthTime" validate:"required,birthtime"`
	Timezone  string   `json:"timezone" validate:"omitempty,max=64"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type natalResponse struct {
	Chart    *astro.NatalChart    `json:"chart"`
	Passport astro.CosmicPassport `json:"passport"`
	Error    string               `json:"error,omitempty"`
}

// Natal computes a chart for ad-hoc birth data without storing it. A chart
// that cannot be built is reported in the body, not as an HTTP error.
func (h *Handler) Natal(c *gin.Context) {
	var req natalRequest
	if !h.bind(c, &req) {
		return
	}
	chart := h.astroSvc.NatalChart(c.Request.Context(), astro.BirthData{
		Date:      req.BirthDate,
		Time:      req.BirthTime,
		Timezone:  req.Timezone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	resp := natalResponse{Chart: chart, Passport: h.astroSvc.Passport(chart)}
	if chart == nil {
		resp.Error = msgChartUnavailable
	}
	c.JSON(http.StatusOK, resp)
}

// Atmosphere returns the lunar snapshot for ?date= (default today).
func (h *Handler) Atmosphere(c *gin.Context) {
	date, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}
	atmosphere, err := h.astroSvc.Atmosphere(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, atmosphere)
}
