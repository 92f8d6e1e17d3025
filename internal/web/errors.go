package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
)

// Messages shown in the error banner.
const (
	msgUpstream      = "Could not reach TVmaze. Please try again."
	msgNotFound      = "That show could not be found."
	msgInvalidShowID = "Invalid show id."
)

// errorStatus maps a pipeline error to the response status and banner text.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msgUpstream
	default:
		return http.StatusBadGateway, msgUpstream
	}
}

// reportError sends server-side failures to Sentry, tagged with the request ID.
// Nothing is sent when Sentry was never initialised.
func reportError(c echo.Context, err error) {
	if errors.Is(err, &apperrors.ErrNotFound{}) || errors.Is(err, context.Canceled) {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request())
		scope.SetTag("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		scope.SetTag("route", c.Path())
	})
	hub.CaptureException(err)
}
