package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/dream"
)

type createDreamRequest struct {
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Title     string `json:"title" validate:"max=200"`
	Narrative string `json:"narrative" validate:"required"`
}

type dreamListResponse struct {
	Dreams []dream.Dream `json:"dreams"`
}

// CreateDream records a dream and attaches its astrology context.
func (h *Handler) CreateDream(c *gin.Context) {
	var req createDreamRequest
	if !h.bind(c, &req) {
		return
	}
	d, err := h.dreamSvc.Create(c.Request.Context(), c.Param("userId"), dream.CreateDreamRequest{
		Date:      req.Date,
		Title:     req.Title,
		Narrative: req.Narrative,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// GetDream returns one of the user's dreams.
func (h *Handler) GetDream(c *gin.Context) {
	d, err := h.dreamSvc.Get(c.Request.Context(), c.Param("userId"), c.Param("dreamId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListDreams lists the user's dreams newest first, optionally bounded by
// ?from= and ?to= and capped by ?limit=.
func (h *Handler) ListDreams(c *gin.Context) {
	filter := dream.ListFilter{
		From: strings.TrimSpace(c.Query("from")),
		To:   strings.TrimSpace(c.Query("to")),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer", err))
			return
		}
		filter.Limit = limit
	}
	dreams, err := h.dreamSvc.List(c.Request.Context(), c.Param("userId"), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dreamListResponse{Dreams: dreams})
}
