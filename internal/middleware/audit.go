package middleware

import (
	"net/http"
	"strings"
	"time"

	"propertymanager/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuditLog writes one structured entry per mutating request and per failed
// request. Reads of health, metrics and docs are never audited.
func AuditLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			if !shouldAudit(method, path, err) {
				return err
			}

			fields := logrus.Fields{
				"audit":       true,
				"action":      method + " " + path,
				"ip":          c.RealIP(),
				"user_agent":  c.Request().UserAgent(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if id := c.Param("id"); id != "" {
				fields["resource_id"] = id
			}
			if user, ok := common.GetUserFromContext(c.Request().Context()); ok {
				fields["user_id"] = user.ID
				fields["username"] = user.Username
			}

			entry := common.Logger.WithFields(fields)
			if err != nil {
				entry.WithField("status", statusOf(err)).Warn("request failed")
			} else {
				entry.WithField("status", c.Response().Status).Info("request completed")
			}
			return err
		}
	}
}

var auditSkipPrefixes = []string{"/health", "/metrics", "/swagger"}

func shouldAudit(method, path string, reqErr error) bool {
	for _, prefix := range auditSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	if reqErr != nil {
		return true
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
