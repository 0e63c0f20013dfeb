package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"techstore-api/internal/auth"
	"techstore-api/internal/storefront"
)

// httpError maps domain errors onto HTTP status codes. Anything outside
// the taxonomy falls through to echo's 500 handling.
func httpError(err error) error {
	var code int
	switch {
	case errors.Is(err, storefront.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, storefront.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, storefront.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, storefront.ErrPaymentVerificationFailed):
		code = http.StatusPaymentRequired
	case errors.Is(err, storefront.ErrUpstreamUnavailable):
		code = http.StatusBadGateway
	case errors.Is(err, storefront.ErrInvalidInput):
		code = http.StatusBadRequest
	default:
		return err
	}
	return echo.NewHTTPError(code, err.Error())
}

func callerFrom(c echo.Context) (*auth.Identity, error) {
	ident, ok := auth.FromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return ident, nil
}
