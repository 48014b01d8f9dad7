package repositories

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepo_Counts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM properties`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tenants WHERE is_active = TRUE`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(8)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contracts WHERE status = 'active'`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(6)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM maintenance_requests WHERE status = 'pending'`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	repo := NewDashboardRepo(mock)
	ctx := context.Background()

	n, err := repo.CountProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	n, err = repo.CountActiveTenants(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	n, err = repo.CountActiveContracts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	n, err = repo.CountPendingMaintenance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepo_SumCompletedPaymentsUsesHalfOpenRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)COALESCE\(SUM\(amount\), 0\).+payment_date >= \$1 AND payment_date < \$2`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	total, err := NewDashboardRepo(mock).SumCompletedPayments(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
