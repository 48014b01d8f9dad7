package handlers

import (
	"net/http"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/middleware"
	"propertymanager/internal/models"
	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles login, logout and the current-user endpoint
type AuthHandlers struct {
	auth         services.AuthService
	cookieSecure bool
}

func NewAuthHandlers(auth services.AuthService, cookieSecure bool) *AuthHandlers {
	return &AuthHandlers{auth: auth, cookieSecure: cookieSecure}
}

type userResponse struct {
	User *models.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login verifies credentials and sets the session cookie
func (h *AuthHandlers) Login(c echo.Context) error {
	var req services.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), &req, c.RealIP())
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(result.Token, result.Session.ExpiresAt))
	return c.JSON(http.StatusOK, userResponse{User: result.User})
}

// Logout deletes the server-side session, if any, and clears the cookie
func (h *AuthHandlers) Logout(c echo.Context) error {
	if sid := middleware.PeekSessionID(c, h.auth.SigningKey()); sid != "" {
		if err := h.auth.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}

	cookie := h.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Me returns the user behind the current session
func (h *AuthHandlers) Me(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.AuthenticationRequired()
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

func (h *AuthHandlers) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl := time.Until(expires); ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	return cookie
}
