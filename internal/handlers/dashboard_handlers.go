package handlers

import (
	"context"
	"net/http"

	"propertymanager/internal/models"

	"github.com/labstack/echo/v4"
)

type DashboardStatsProvider interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type DashboardHandlers struct {
	stats DashboardStatsProvider
}

func NewDashboardHandlers(stats DashboardStatsProvider) *DashboardHandlers {
	return &DashboardHandlers{stats: stats}
}

// GetStats returns property, tenant, contract and maintenance counts plus the
// current month's completed payment total
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	stats, err := h.stats.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
