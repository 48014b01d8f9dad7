package repositories

import (
	"context"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID int64) ([]models.Payment, error)
}

type paymentRepo struct {
	db DBTX
}

func NewPaymentRepo(db DBTX) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, invoice_id, amount, payment_date, payment_method, status, reference, notes, created_at, updated_at`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Status,
		&p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (invoice_id, amount, payment_date, payment_method, status, reference, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, p.InvoiceID, p.Amount, p.PaymentDate, p.PaymentMethod, p.Status,
		p.Reference, p.Notes).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translateError(err)
}

func (r *paymentRepo) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, id))
}

func (r *paymentRepo) Update(ctx context.Context, p *models.Payment) error {
	query := `
		UPDATE payments
		SET invoice_id = $1, amount = $2, payment_date = $3, payment_method = $4, status = $5,
			reference = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, p.InvoiceID, p.Amount, p.PaymentDate, p.PaymentMethod, p.Status,
		p.Reference, p.Notes, p.ID).Scan(&p.UpdatedAt)
	return translateError(err)
}

func (r *paymentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id))
}

func (r *paymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *paymentRepo) ListByInvoiceID(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY payment_date DESC`
	return r.query(ctx, query, invoiceID)
}

func (r *paymentRepo) query(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
