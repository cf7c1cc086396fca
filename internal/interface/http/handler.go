package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/dream"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/util"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	astroSvc   astro.Service
	profileSvc profile.Service
	dreamSvc   dream.Service
	validate   *validator.Validate
	logger     *slog.Logger
	now        func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(astroSvc astro.Service, profileSvc profile.Service, dreamSvc dream.Service, logger *slog.Logger) *Handler {
	return &Handler{
		astroSvc:   astroSvc,
		profileSvc: profileSvc,
		dreamSvc:   dreamSvc,
		validate:   newValidator(),
		logger:     logger.With("component", "http.handler"),
		now:        util.NowUTC,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("birthtime", func(fl validator.FieldLevel) bool {
		return astro.ValidBirthTime(fl.Field().String())
	})
	return v
}

// bind decodes the JSON body into dst and runs struct validation. It aborts
// the request and returns false on failure.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", validationMessage(err), err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errMessage(err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "birthtime":
			parts = append(parts, fe.Field()+" must be HH:MM or HH:MM:SS")
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s must match layout %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

// dateQuery reads a YYYY-MM-DD query parameter, defaulting to today (UTC).
func (h *Handler) dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return util.MidnightUTC(h.now()), true
	}
	date, err := util.ParseDate(raw)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", name+" must be formatted as YYYY-MM-DD", err))
		return time.Time{}, false
	}
	return date, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	abortWithError(c, fromDomainError(err))
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
