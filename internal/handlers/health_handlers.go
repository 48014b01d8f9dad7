package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"propertymanager/internal/common"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	checks    map[string]HealthCheck
	version   string
	startedAt time.Time
}

// NewHealthHandlers creates health handlers over the named dependency checks.
// A nil check is skipped.
func NewHealthHandlers(version string, checks map[string]HealthCheck) *HealthHandlers {
	active := make(map[string]HealthCheck, len(checks))
	for name, check := range checks {
		if check != nil {
			active[name] = check
		}
	}
	return &HealthHandlers{checks: active, version: version, startedAt: time.Now()}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime,omitempty"`
	Goroutines int               `json:"goroutines,omitempty"`
	Services   map[string]string `json:"services,omitempty"`
}

// LivenessCheck reports that the process is serving requests
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthStatus{
		Status:     "alive",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Version:    h.version,
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	})
}

// ReadinessCheck pings every dependency and answers 503 if any is down
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Services:  make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			common.Logger.WithError(err).WithField("service", name).Warn("Readiness check failed")
			health.Services[name] = "unhealthy"
			health.Status = "not_ready"
			continue
		}
		health.Services[name] = "healthy"
	}

	status := http.StatusOK
	if health.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
