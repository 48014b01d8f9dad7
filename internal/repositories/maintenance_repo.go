package repositories

import (
	"context"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	Update(ctx context.Context, req *models.MaintenanceRequest) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.MaintenanceRequest, error)
	ListByPropertyID(ctx context.Context, propertyID int64) ([]models.MaintenanceRequest, error)
}

type maintenanceRepo struct {
	db DBTX
}

func NewMaintenanceRepo(db DBTX) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

const maintenanceColumns = `id, property_id, tenant_id, title, description, priority, status, estimated_cost, actual_cost, completed_at, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*models.MaintenanceRequest, error) {
	m := &models.MaintenanceRequest{}
	err := row.Scan(&m.ID, &m.PropertyID, &m.TenantID, &m.Title, &m.Description, &m.Priority, &m.Status,
		&m.EstimatedCost, &m.ActualCost, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func (r *maintenanceRepo) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (property_id, tenant_id, title, description, priority, status, estimated_cost, actual_cost, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, m.PropertyID, m.TenantID, m.Title, m.Description, m.Priority, m.Status,
		m.EstimatedCost, m.ActualCost, m.CompletedAt).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return translateError(err)
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`
	return scanMaintenance(r.db.QueryRow(ctx, query, id))
}

func (r *maintenanceRepo) Update(ctx context.Context, m *models.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET property_id = $1, tenant_id = $2, title = $3, description = $4, priority = $5, status = $6,
			estimated_cost = $7, actual_cost = $8, completed_at = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, m.PropertyID, m.TenantID, m.Title, m.Description, m.Priority, m.Status,
		m.EstimatedCost, m.ActualCost, m.CompletedAt, m.ID).Scan(&m.UpdatedAt)
	return translateError(err)
}

func (r *maintenanceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id))
}

func (r *maintenanceRepo) List(ctx context.Context) ([]models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *maintenanceRepo) ListByPropertyID(ctx context.Context, propertyID int64) ([]models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE property_id = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, propertyID)
}

func (r *maintenanceRepo) query(ctx context.Context, query string, args ...any) ([]models.MaintenanceRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	requests := make([]models.MaintenanceRequest, 0)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *m)
	}
	return requests, rows.Err()
}
