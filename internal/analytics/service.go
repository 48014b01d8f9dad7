package analytics

import (
	"context"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

// DashboardService computes the dashboard aggregates as of call time.
type DashboardService struct {
	repo repositories.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// Stats runs each aggregate as an independent query. monthlyRevenue covers
// completed payments dated within the current calendar month in the server's
// location.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	var err error

	if stats.TotalProperties, err = s.repo.CountProperties(ctx); err != nil {
		return nil, common.Unexpected("count properties", err)
	}
	if stats.ActiveTenants, err = s.repo.CountActiveTenants(ctx); err != nil {
		return nil, common.Unexpected("count active tenants", err)
	}
	if stats.ActiveContracts, err = s.repo.CountActiveContracts(ctx); err != nil {
		return nil, common.Unexpected("count active contracts", err)
	}
	if stats.PendingMaintenance, err = s.repo.CountPendingMaintenance(ctx); err != nil {
		return nil, common.Unexpected("count pending maintenance", err)
	}

	from, to := common.MonthBounds(s.now())
	if stats.MonthlyRevenue, err = s.repo.SumCompletedPayments(ctx, from, to); err != nil {
		return nil, common.Unexpected("sum monthly revenue", err)
	}

	return stats, nil
}
