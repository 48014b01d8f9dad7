package caching

import (
	"context"
	"sync"
	"time"

	"propertymanager/internal/models"
)

// memoryCacheService is the single-process fallback used when no Redis
// address is configured, and by tests.
type memoryCacheService struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	counters map[string]*windowCounter
	now      func() time.Time
	// lastSweep throttles pruning of expired entries to once per sweepInterval.
	lastSweep time.Time
}

const sweepInterval = time.Minute

type windowCounter struct {
	count     int
	expiresAt time.Time
}

func NewMemoryCacheService() CacheService {
	return &memoryCacheService{
		sessions: make(map[string]models.Session),
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
}

func (m *memoryCacheService) CreateSession(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(m.now())
	m.sessions[session.ID] = *session
	return nil
}

func (m *memoryCacheService) GetSession(_ context.Context, sessionID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if session.Expired(m.now()) {
		delete(m.sessions, sessionID)
		return nil, nil
	}
	return &session, nil
}

func (m *memoryCacheService) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memoryCacheService) IsRateLimited(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweepLocked(now)
	c, ok := m.counters[key]
	if !ok || !now.Before(c.expiresAt) {
		c = &windowCounter{expiresAt: now.Add(window)}
		m.counters[key] = c
	}
	c.count++
	return c.count > limit, nil
}

// sweepLocked drops expired sessions and closed rate-limit windows. The
// caller must hold m.mu.
func (m *memoryCacheService) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	for id, session := range m.sessions {
		if session.Expired(now) {
			delete(m.sessions, id)
		}
	}
	for key, c := range m.counters {
		if !now.Before(c.expiresAt) {
			delete(m.counters, key)
		}
	}
}

func (m *memoryCacheService) Ping(context.Context) error { return nil }

func (m *memoryCacheService) Close() error { return nil }
