package middleware

import (
	"errors"
	"net/http"

	"propertymanager/internal/common"
	"propertymanager/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records in-flight requests, totals and latency per route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			done := metrics.RequestStarted()
			err := next(c)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = statusOf(err)
			}
			done(c.Request().Method, c.Path(), status)
			return err
		}
	}
}

func statusOf(err error) int {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
