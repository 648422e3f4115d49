package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
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

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountNotVerified):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrPasswordNotInitialized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrPasswordAlreadySet):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, domain.ErrInvalidEventStatus):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job not found"
	case errors.Is(err, domain.ErrInvalidJobStatus):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrJobClosed):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrConnectionNotFound):
		return http.StatusNotFound, "connection not found"
	case errors.Is(err, domain.ErrConnectionExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidConnectionStatus):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrDonationNotFound):
		return http.StatusNotFound, "donation not found"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidPaymentTransition):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrEmptyChatMessage):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
