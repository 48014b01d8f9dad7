package repositories

import (
	"context"
	"time"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id int64) (*models.Contract, error)
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Contract, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Contract, error)
	ListByPropertyID(ctx context.Context, propertyID int64) ([]models.Contract, error)
	// ExpireEnded marks active contracts whose end date is before now as
	// expired. It returns the distinct affected property ids and the number
	// of contracts expired.
	ExpireEnded(ctx context.Context, now time.Time) ([]int64, int, error)
}

type contractRepo struct {
	db DBTX
}

func NewContractRepo(db DBTX) ContractRepository {
	return &contractRepo{db: db}
}

const contractColumns = `id, property_id, tenant_id, start_date, end_date, monthly_rent, security_deposit, status, terms, created_at, updated_at`

func scanContract(row pgx.Row) (*models.Contract, error) {
	c := &models.Contract{}
	err := row.Scan(&c.ID, &c.PropertyID, &c.TenantID, &c.StartDate, &c.EndDate, &c.MonthlyRent, &c.SecurityDeposit,
		&c.Status, &c.Terms, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) error {
	query := `
		INSERT INTO contracts (property_id, tenant_id, start_date, end_date, monthly_rent, security_deposit, status, terms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.PropertyID, c.TenantID, c.StartDate, c.EndDate, c.MonthlyRent, c.SecurityDeposit,
		c.Status, c.Terms).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translateError(err)
}

func (r *contractRepo) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	return scanContract(r.db.QueryRow(ctx, query, id))
}

func (r *contractRepo) Update(ctx context.Context, c *models.Contract) error {
	query := `
		UPDATE contracts
		SET property_id = $1, tenant_id = $2, start_date = $3, end_date = $4, monthly_rent = $5,
			security_deposit = $6, status = $7, terms = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, c.PropertyID, c.TenantID, c.StartDate, c.EndDate, c.MonthlyRent,
		c.SecurityDeposit, c.Status, c.Terms, c.ID).Scan(&c.UpdatedAt)
	return translateError(err)
}

func (r *contractRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id))
}

func (r *contractRepo) List(ctx context.Context) ([]models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *contractRepo) ListByIDs(ctx context.Context, ids []int64) ([]models.Contract, error) {
	if len(ids) == 0 {
		return []models.Contract{}, nil
	}
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = ANY($1)`
	return r.query(ctx, query, ids)
}

func (r *contractRepo) ListByPropertyID(ctx context.Context, propertyID int64) ([]models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE property_id = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, propertyID)
}

func (r *contractRepo) ExpireEnded(ctx context.Context, now time.Time) ([]int64, int, error) {
	query := `
		UPDATE contracts
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date < $1
		RETURNING property_id
	`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	seen := make(map[int64]struct{})
	propertyIDs := make([]int64, 0)
	expired := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, 0, err
		}
		expired++
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		propertyIDs = append(propertyIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return propertyIDs, expired, nil
}

func (r *contractRepo) query(ctx context.Context, query string, args ...any) ([]models.Contract, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	contracts := make([]models.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}
