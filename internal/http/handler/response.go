package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{jsonKeyMessage: message})
}

// handleHTTPError renders the echo.HTTPError values the binding helpers
// produce; anything else collapses to a masked 500.
func handleHTTPError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return respondError(c, he.Code, msg)
		}
		return respondError(c, he.Code, http.StatusText(he.Code))
	}

	return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
