package repositories

import (
	"context"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id int64) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Tenant, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Tenant, error)
}

type tenantRepo struct {
	db DBTX
}

func NewTenantRepo(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `id, first_name, last_name, email, phone, address, date_of_birth, emergency_contact, is_active, created_at, updated_at`

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.FirstName, &tenant.LastName, &tenant.Email, &tenant.Phone, &tenant.Address,
		&tenant.DateOfBirth, &tenant.EmergencyContact, &tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return tenant, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (first_name, last_name, email, phone, address, date_of_birth, emergency_contact, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, tenant.FirstName, tenant.LastName, tenant.Email, tenant.Phone, tenant.Address,
		tenant.DateOfBirth, tenant.EmergencyContact, tenant.IsActive).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	return translateError(err)
}

func (r *tenantRepo) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET first_name = $1, last_name = $2, email = $3, phone = $4, address = $5, date_of_birth = $6,
			emergency_contact = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, tenant.FirstName, tenant.LastName, tenant.Email, tenant.Phone, tenant.Address,
		tenant.DateOfBirth, tenant.EmergencyContact, tenant.IsActive, tenant.ID).Scan(&tenant.UpdatedAt)
	return translateError(err)
}

func (r *tenantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id))
}

func (r *tenantRepo) List(ctx context.Context) ([]models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *tenantRepo) ListByIDs(ctx context.Context, ids []int64) ([]models.Tenant, error) {
	if len(ids) == 0 {
		return []models.Tenant{}, nil
	}
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = ANY($1)`
	return r.query(ctx, query, ids)
}

func (r *tenantRepo) query(ctx context.Context, query string, args ...any) ([]models.Tenant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	tenants := make([]models.Tenant, 0)
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *tenant)
	}
	return tenants, rows.Err()
}
