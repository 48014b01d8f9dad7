package repositories

import (
	"context"
	"testing"
	"time"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractRepo_CreateForeignKeyViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &models.Contract{
		PropertyID:  404,
		TenantID:    1,
		StartDate:   start,
		EndDate:     start.AddDate(1, 0, 0),
		MonthlyRent: 1200,
		Status:      models.ContractStatusActive,
	}
	mock.ExpectQuery(`INSERT INTO contracts`).
		WithArgs(c.PropertyID, c.TenantID, c.StartDate, c.EndDate, c.MonthlyRent, c.SecurityDeposit, c.Status, c.Terms).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "contracts_property_id_fkey"})

	err = NewContractRepo(mock).Create(context.Background(), c)
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	assert.Zero(t, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepo_ListByPropertyID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM contracts WHERE property_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "property_id", "tenant_id", "start_date", "end_date", "monthly_rent",
			"security_deposit", "status", "terms", "created_at", "updated_at"}).
			AddRow(int64(1), int64(3), int64(9), now, now.AddDate(1, 0, 0), 950.0, (*float64)(nil), "active", (*string)(nil), now, now))

	contracts, err := NewContractRepo(mock).ListByPropertyID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, int64(9), contracts[0].TenantID)
	assert.Nil(t, contracts[0].SecurityDeposit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepo_ExpireEndedDeduplicatesProperties(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE contracts\s+SET status = 'expired'`).
		WithArgs(now).
		WillReturnRows(pgxmock.NewRows([]string{"property_id"}).
			AddRow(int64(4)).
			AddRow(int64(7)).
			AddRow(int64(4)))

	ids, expired, err := NewContractRepo(mock).ExpireEnded(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 7}, ids)
	assert.Equal(t, 3, expired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
