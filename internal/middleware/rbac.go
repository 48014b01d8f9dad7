package middleware

import (
	"propertymanager/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireRole lets the request through only when the session user holds one
// of the given roles. It must run after SessionMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := common.GetUserFromContext(c.Request().Context())
			if !ok {
				return common.AuthenticationRequired()
			}
			if _, ok := allowed[user.Role]; !ok {
				return common.AuthorizationDenied()
			}
			return next(c)
		}
	}
}
