package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"propertymanager/internal/caching"
	"propertymanager/internal/common"
	"propertymanager/internal/metrics"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionIssuer   = "propertymanager"
	loginRateWindow = time.Minute
)

// AuthService manages cookie sessions. The cookie carries a signed token whose
// jti names a server-side session and whose subject is the user id.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest, clientIP string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves verified token claims to a live session and active user.
	Authenticate(ctx context.Context, claims *jwt.RegisteredClaims) (*models.User, *models.Session, error)
	SigningKey() []byte
}

type AuthConfig struct {
	Secret         string
	SessionTTL     time.Duration
	LoginRateLimit int
}

type authService struct {
	users    repositories.UserRepository
	sessions caching.SessionStore
	limiter  caching.RateLimiter
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(users repositories.UserRepository, sessions caching.SessionStore, limiter caching.RateLimiter, cfg AuthConfig) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		limiter:  limiter,
		cfg:      cfg,
		now:      time.Now,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User    *models.User
	Session *models.Session
	Token   string
}

func (s *authService) SigningKey() []byte {
	return []byte(s.cfg.Secret)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest, clientIP string) (*LoginResult, error) {
	if s.limiter != nil && s.cfg.LoginRateLimit > 0 {
		limited, err := s.limiter.IsRateLimited(ctx, "login:"+clientIP, s.cfg.LoginRateLimit, loginRateWindow)
		if err != nil {
			common.Logger.WithError(err).Warn("Login rate limiter unavailable")
		} else if limited {
			metrics.RecordLifecycleEvent(metrics.EventLoginRateLimited, 1)
			return nil, common.RateLimited()
		}
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.RecordLifecycleEvent(metrics.EventLoginFailed, 1)
			return nil, common.InvalidCredentials()
		}
		return nil, common.Unexpected("log in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil || !user.IsActive {
		metrics.RecordLifecycleEvent(metrics.EventLoginFailed, 1)
		return nil, common.InvalidCredentials()
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, common.Unexpected("create session", err)
	}

	token, err := s.signSession(session)
	if err != nil {
		return nil, common.Unexpected("sign session", err)
	}

	common.Logger.WithField("user_id", user.ID).Info("User logged in")
	return &LoginResult{User: user, Session: session, Token: token}, nil
}

func (s *authService) signSession(session *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    SessionIssuer,
		Subject:   strconv.FormatInt(session.UserID, 10),
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.SigningKey())
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return common.Unexpected("log out", err)
	}
	metrics.RecordLifecycleEvent(metrics.EventSessionRevoked, 1)
	return nil
}

func (s *authService) Authenticate(ctx context.Context, claims *jwt.RegisteredClaims) (*models.User, *models.Session, error) {
	if claims == nil || claims.ID == "" {
		return nil, nil, common.AuthenticationRequired()
	}

	session, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, nil, common.Unexpected("load session", err)
	}
	if session == nil || session.Expired(s.now()) || strconv.FormatInt(session.UserID, 10) != claims.Subject {
		return nil, nil, common.AuthenticationRequired()
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, common.AuthenticationRequired()
		}
		return nil, nil, common.Unexpected("load session user", err)
	}
	if !user.IsActive {
		return nil, nil, common.AuthenticationRequired()
	}
	return user, session, nil
}
