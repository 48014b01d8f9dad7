package middleware

import (
	"propertymanager/internal/common"
	"propertymanager/internal/services"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "propertymanager.sid"
	claimsContextKey  = "session_claims"
)

// SessionMiddleware verifies the signed session cookie and then resolves it to
// a live server-side session and an active user.
func SessionMiddleware(auth services.AuthService) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup:   "cookie:" + SessionCookieName,
		SigningKey:    auth.SigningKey(),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    claimsContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.AuthenticationRequired()
		},
	})

	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(claimsContextKey).(*jwt.Token)
			if !ok {
				return common.AuthenticationRequired()
			}
			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok || claims.Issuer != services.SessionIssuer {
				return common.AuthenticationRequired()
			}

			ctx := c.Request().Context()
			user, session, err := auth.Authenticate(ctx, claims)
			if err != nil {
				return err
			}

			c.SetRequest(c.Request().WithContext(common.WithUser(ctx, user, session.ID)))
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolve(next))
	}
}

// PeekSessionID returns the session id carried by a validly signed cookie, or
// "" when there is none. It does not consult the session store.
func PeekSessionID(c echo.Context, key []byte) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	claims := new(jwt.RegisteredClaims)
	_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(services.SessionIssuer))
	if err != nil {
		return ""
	}
	return claims.ID
}
