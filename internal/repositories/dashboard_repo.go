package repositories

import (
	"context"
	"time"
)

// DashboardRepository exposes the read-only aggregates shown on the dashboard.
// Each method is a separate statement.
type DashboardRepository interface {
	CountProperties(ctx context.Context) (int64, error)
	CountActiveTenants(ctx context.Context) (int64, error)
	CountActiveContracts(ctx context.Context) (int64, error)
	CountPendingMaintenance(ctx context.Context) (int64, error)
	// SumCompletedPayments totals completed payments dated in [from, to).
	SumCompletedPayments(ctx context.Context, from, to time.Time) (float64, error)
}

type dashboardRepo struct {
	db DBTX
}

func NewDashboardRepo(db DBTX) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

func (r *dashboardRepo) CountProperties(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM properties`)
}

func (r *dashboardRepo) CountActiveTenants(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tenants WHERE is_active = TRUE`)
}

func (r *dashboardRepo) CountActiveContracts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM contracts WHERE status = 'active'`)
}

func (r *dashboardRepo) CountPendingMaintenance(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM maintenance_requests WHERE status = 'pending'`)
}

func (r *dashboardRepo) SumCompletedPayments(ctx context.Context, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::float8
		FROM payments
		WHERE status = 'completed' AND payment_date >= $1 AND payment_date < $2
	`
	var total float64
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, translateError(err)
	}
	return total, nil
}
