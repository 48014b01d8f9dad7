package repositories

import (
	"context"
	"time"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	// SetImageURL stores the object key and returns the refreshed updated_at.
	SetImageURL(ctx context.Context, id int64, imageURL string) (time.Time, error)
	// ReleaseIfVacant moves a rented property back to available when no
	// active contract references it any more.
	ReleaseIfVacant(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Property, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Property, error)
}

type propertyRepo struct {
	db DBTX
}

func NewPropertyRepo(db DBTX) PropertyRepository {
	return &propertyRepo{db: db}
}

const propertyColumns = `id, name, address, property_type, bedrooms, bathrooms, monthly_rent, status, description, image_url, created_at, updated_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.PropertyType, &p.Bedrooms, &p.Bathrooms, &p.MonthlyRent,
		&p.Status, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO properties (name, address, property_type, bedrooms, bathrooms, monthly_rent, status, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, p.Name, p.Address, p.PropertyType, p.Bedrooms, p.Bathrooms, p.MonthlyRent,
		p.Status, p.Description, p.ImageURL).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translateError(err)
}

func (r *propertyRepo) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(r.db.QueryRow(ctx, query, id))
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, address = $2, property_type = $3, bedrooms = $4, bathrooms = $5, monthly_rent = $6,
			status = $7, description = $8, image_url = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, p.Name, p.Address, p.PropertyType, p.Bedrooms, p.Bathrooms, p.MonthlyRent,
		p.Status, p.Description, p.ImageURL, p.ID).Scan(&p.UpdatedAt)
	return translateError(err)
}

func (r *propertyRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE properties SET status = $1, updated_at = NOW() WHERE id = $2`
	return mustAffect(r.db.Exec(ctx, query, status, id))
}

func (r *propertyRepo) SetImageURL(ctx context.Context, id int64, imageURL string) (time.Time, error) {
	query := `UPDATE properties SET image_url = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, query, imageURL, id).Scan(&updatedAt)
	return updatedAt, translateError(err)
}

func (r *propertyRepo) ReleaseIfVacant(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE properties
		SET status = 'available', updated_at = NOW()
		WHERE id = $1 AND status = 'rented'
			AND NOT EXISTS (SELECT 1 FROM contracts WHERE property_id = $1 AND status = 'active')
	`
	return affected(r.db.Exec(ctx, query, id))
}

func (r *propertyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id))
}

func (r *propertyRepo) List(ctx context.Context) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *propertyRepo) ListByIDs(ctx context.Context, ids []int64) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = ANY($1)`
	return r.query(ctx, query, ids)
}

func (r *propertyRepo) query(ctx context.Context, query string, args ...any) ([]models.Property, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	properties := make([]models.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}
