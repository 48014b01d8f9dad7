package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/metrics"
	"propertymanager/internal/models"
	"propertymanager/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type fakeAuth struct {
	user    *models.User
	session *models.Session
	err     error
	claims  *jwt.RegisteredClaims
}

func (f *fakeAuth) Login(ctx context.Context, req *services.LoginRequest, clientIP string) (*services.LoginResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuth) Logout(ctx context.Context, sessionID string) error { return nil }

func (f *fakeAuth) Authenticate(ctx context.Context, claims *jwt.RegisteredClaims) (*models.User, *models.Session, error) {
	f.claims = claims
	return f.user, f.session, f.err
}

func (f *fakeAuth) SigningKey() []byte { return []byte(testSecret) }

func signedCookie(t *testing.T, claims jwt.RegisteredClaims) *http.Cookie {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func validClaims() jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    services.SessionIssuer,
		Subject:   "7",
		ID:        "sess-1",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
}

func runMiddleware(mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec, mw(handler)(c)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.StatusCode)
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	auth := &fakeAuth{}
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)

	_, _, err := runMiddleware(SessionMiddleware(auth), req, func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	assertStatus(t, err, http.StatusUnauthorized)
	assert.Nil(t, auth.claims)
}

func TestSessionMiddleware_BadSignature(t *testing.T) {
	auth := &fakeAuth{}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	_, _, err = runMiddleware(SessionMiddleware(auth), req, func(c echo.Context) error { return nil })

	assertStatus(t, err, http.StatusUnauthorized)
	assert.Nil(t, auth.claims)
}

func TestSessionMiddleware_ForeignIssuer(t *testing.T) {
	auth := &fakeAuth{}
	claims := validClaims()
	claims.Issuer = "someone-else"
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.AddCookie(signedCookie(t, claims))

	_, _, err := runMiddleware(SessionMiddleware(auth), req, func(c echo.Context) error { return nil })

	assertStatus(t, err, http.StatusUnauthorized)
}

func TestSessionMiddleware_RevokedSession(t *testing.T) {
	auth := &fakeAuth{err: common.AuthenticationRequired()}
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.AddCookie(signedCookie(t, validClaims()))

	_, _, err := runMiddleware(SessionMiddleware(auth), req, func(c echo.Context) error { return nil })

	assertStatus(t, err, http.StatusUnauthorized)
	require.NotNil(t, auth.claims)
	assert.Equal(t, "sess-1", auth.claims.ID)
}

func TestSessionMiddleware_StoresUser(t *testing.T) {
	user := &models.User{ID: 7, Username: "admin", Role: models.RoleAdmin, IsActive: true}
	auth := &fakeAuth{user: user, session: &models.Session{ID: "sess-1", UserID: 7}}
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.AddCookie(signedCookie(t, validClaims()))

	var seen *models.User
	var sid string
	_, _, err := runMiddleware(SessionMiddleware(auth), req, func(c echo.Context) error {
		seen, _ = common.GetUserFromContext(c.Request().Context())
		sid, _ = common.GetSessionIDFromContext(c.Request().Context())
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, user, seen)
	assert.Equal(t, "sess-1", sid)
}

func TestRequireRole(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		_, _, err := runMiddleware(RequireRole(models.RoleAdmin), req, ok)
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		ctx := common.WithUser(req.Context(), &models.User{ID: 2, Role: models.RoleManager}, "s")
		_, _, err := runMiddleware(RequireRole(models.RoleAdmin), req.WithContext(ctx), ok)
		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		ctx := common.WithUser(req.Context(), &models.User{ID: 1, Role: models.RoleAdmin}, "s")
		_, rec, err := runMiddleware(RequireRole(models.RoleAdmin), req.WithContext(ctx), ok)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/api/tenants/:id", func(c echo.Context) error {
		return common.NotFound("Tenant")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tenants/42", nil))

	out := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, out.Body.String(), `route="/api/tenants/:id",status="404"`)
}

func TestShouldAudit(t *testing.T) {
	assert.True(t, shouldAudit(http.MethodPost, "/api/contracts", nil))
	assert.True(t, shouldAudit(http.MethodDelete, "/api/contracts/:id", nil))
	assert.True(t, shouldAudit(http.MethodGet, "/api/contracts", errors.New("boom")))
	assert.False(t, shouldAudit(http.MethodGet, "/api/contracts", nil))
	assert.False(t, shouldAudit(http.MethodGet, "/health/ready", errors.New("down")))
}

func TestVersionHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	_, rec, err := runMiddleware(VersionHeader("1.2.0"), req, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", rec.Header().Get("X-API-Version"))
}
