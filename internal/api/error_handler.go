package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/api/handler"
	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as a field-level error list.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent envelope: {"success": false, "message"|"errors": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, handler.FailFields(ve.Fields))
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, handler.Fail(msg))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Not-found stays
	// distinct from forbidden: 404 only when the resource does not exist.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, "vehicle not found"
	case errors.Is(err, domain.ErrServiceNotFound):
		return http.StatusNotFound, "service request not found"
	case errors.Is(err, domain.ErrTruckNotFound):
		return http.StatusNotFound, "truck not found"
	case errors.Is(err, domain.ErrBranchNotFound):
		return http.StatusNotFound, "branch not found"
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, "message not found"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound, "payment not found"
	case errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusNotFound, "location not found"
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTruckUnavailable),
		errors.Is(err, domain.ErrPaymentTerminal):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrAmountBelowMinimum),
		errors.Is(err, domain.ErrProviderDisabled):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusBadGateway, "payment provider unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
