package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// errorResponse is the canonical envelope for single-message errors.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse is the envelope for accumulated field errors: one
// entry per invalid field, all reported together.
type validationResponse struct {
	Error  string             `json:"error"`
	Errors domain.FieldErrors `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures as a field→message map in one response.
//   - Logs unexpected errors internally without leaking details to the
//     client; no failure is process-fatal.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			_ = c.JSON(http.StatusBadRequest, validationResponse{Error: "Bad Input", Errors: fieldErrs})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The authentication
	// taxonomy stays opaque: one code, one message, regardless of cause.
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, domain.ErrCategoryExists):
		return http.StatusConflict, "category already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
