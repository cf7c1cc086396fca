package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	apperrors "github.com/FILIWILY/morpheus-dream-app-sub000/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

var codeStatus = map[string]int{
	apperrors.CodeInvalidInput:         http.StatusBadRequest,
	apperrors.CodeNotFound:             http.StatusNotFound,
	apperrors.CodeStorage:              http.StatusInternalServerError,
	apperrors.CodeEphemerisUnavailable: http.StatusBadGateway,
}

// fromDomainError maps an AppError code onto its HTTP status. Bare ephemeris
// sentinels count as ephemeris_unavailable.
func fromDomainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" && errors.Is(err, astro.ErrEphemerisUnavailable) {
		code = apperrors.CodeEphemerisUnavailable
	}
	status, ok := codeStatus[code]
	if !ok {
		return asHTTPError(err)
	}
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return NewHTTPError(status, code, message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
