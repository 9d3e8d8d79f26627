package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://timevalue.fortuna.app/errors/validation"
	ErrorTypeNotFound     = "https://timevalue.fortuna.app/errors/not-found"
	ErrorTypeUnauthorized = "https://timevalue.fortuna.app/errors/unauthorized"
	ErrorTypeInternal     = "https://timevalue.fortuna.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceError maps a service error onto a problem response.
// Input errors carry their message; anything unexpected is logged and reported as fallback.
func NewServiceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMonthKey),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrRangeTooLong),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidRow):
		// Stored data the engine refuses; the caller cannot fix it through this request
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("Stored row rejected")
		return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
			Type:     ErrorTypeValidation,
			Title:    "Unprocessable Data",
			Status:   http.StatusUnprocessableEntity,
			Detail:   err.Error(),
			Instance: c.Request().URL.Path,
		})
	case errors.Is(err, domain.ErrProfileNotFound):
		return NewNotFoundError(c, "Time-value profile not found")
	case errors.Is(err, domain.ErrRateNotFound):
		return NewNotFoundError(c, "Exchange rate not found")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, err.Error())
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(fallback)
	return NewInternalError(c, fallback)
}
