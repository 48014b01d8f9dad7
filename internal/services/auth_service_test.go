package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"propertymanager/internal/models"
	"propertymanager/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	users    *MockUserRepository
	sessions *fakeSessionStore
	service  *authService
	now      time.Time
	user     *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &authFixture{
		users:    &MockUserRepository{},
		sessions: newFakeSessionStore(),
		now:      time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		user:     &models.User{ID: 1, Username: "admin", Password: string(hash), Role: models.RoleAdmin, IsActive: true},
	}
	f.service = NewAuthService(f.users, f.sessions, f.sessions, AuthConfig{
		Secret:         "test-secret",
		SessionTTL:     24 * time.Hour,
		LoginRateLimit: 5,
	}).(*authService)
	f.service.now = func() time.Time { return f.now }
	t.Cleanup(func() { f.users.AssertExpectations(t) })
	return f
}

func TestLogin_IssuesSignedSession(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByUsername", mock.Anything, "admin").Return(f.user, nil)

	result, err := f.service.Login(context.Background(), &LoginRequest{Username: "admin", Password: "admin"}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, f.user, result.User)
	assert.Equal(t, f.now.Add(24*time.Hour), result.Session.ExpiresAt)
	assert.Contains(t, f.sessions.sessions, result.Session.ID)

	claims := new(jwt.RegisteredClaims)
	_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return f.service.SigningKey(), nil
	}, jwt.WithTimeFunc(func() time.Time { return f.now }))
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, claims.ID)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, SessionIssuer, claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByUsername", mock.Anything, "admin").Return(f.user, nil)

	_, err := f.service.Login(context.Background(), &LoginRequest{Username: "admin", Password: "nope"}, "10.0.0.1")

	assertAppStatus(t, err, http.StatusUnauthorized)
	assert.Empty(t, f.sessions.sessions)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrNotFound)

	_, err := f.service.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "x"}, "10.0.0.1")

	assertAppStatus(t, err, http.StatusUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	f.user.IsActive = false
	f.users.On("GetByUsername", mock.Anything, "admin").Return(f.user, nil)

	_, err := f.service.Login(context.Background(), &LoginRequest{Username: "admin", Password: "admin"}, "10.0.0.1")

	assertAppStatus(t, err, http.StatusUnauthorized)
}

func TestLogin_RateLimited(t *testing.T) {
	f := newAuthFixture(t)
	f.sessions.limited = true

	_, err := f.service.Login(context.Background(), &LoginRequest{Username: "admin", Password: "admin"}, "10.0.0.1")

	assertAppStatus(t, err, http.StatusTooManyRequests)
	f.users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestLogin_SessionStoreFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByUsername", mock.Anything, "admin").Return(f.user, nil)
	f.sessions.err = errors.New("redis down")

	_, err := f.service.Login(context.Background(), &LoginRequest{Username: "admin", Password: "admin"}, "10.0.0.1")

	assertAppStatus(t, err, http.StatusInternalServerError)
}

func TestAuthenticate(t *testing.T) {
	session := &models.Session{ID: "sess-1", UserID: 1, ExpiresAt: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)}
	claimsFor := func(s *models.Session) *jwt.RegisteredClaims {
		return &jwt.RegisteredClaims{ID: s.ID, Subject: strconv.FormatInt(s.UserID, 10)}
	}

	t.Run("live session", func(t *testing.T) {
		f := newAuthFixture(t)
		f.sessions.sessions[session.ID] = session
		f.users.On("GetByID", mock.Anything, int64(1)).Return(f.user, nil)

		user, got, err := f.service.Authenticate(context.Background(), claimsFor(session))
		require.NoError(t, err)
		assert.Equal(t, f.user, user)
		assert.Equal(t, session, got)
	})

	t.Run("revoked session", func(t *testing.T) {
		f := newAuthFixture(t)
		_, _, err := f.service.Authenticate(context.Background(), claimsFor(session))
		assertAppStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("expired session", func(t *testing.T) {
		f := newAuthFixture(t)
		f.sessions.sessions[session.ID] = session
		f.now = session.ExpiresAt
		_, _, err := f.service.Authenticate(context.Background(), claimsFor(session))
		assertAppStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		f := newAuthFixture(t)
		f.sessions.sessions[session.ID] = session
		claims := claimsFor(session)
		claims.Subject = "2"
		_, _, err := f.service.Authenticate(context.Background(), claims)
		assertAppStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("deactivated user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.sessions.sessions[session.ID] = session
		f.user.IsActive = false
		f.users.On("GetByID", mock.Anything, int64(1)).Return(f.user, nil)
		_, _, err := f.service.Authenticate(context.Background(), claimsFor(session))
		assertAppStatus(t, err, http.StatusUnauthorized)
	})
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.sessions.sessions["sess-1"] = &models.Session{ID: "sess-1"}

	require.NoError(t, f.service.Logout(context.Background(), "sess-1"))
	assert.NotContains(t, f.sessions.sessions, "sess-1")
	require.NoError(t, f.service.Logout(context.Background(), ""))
}
