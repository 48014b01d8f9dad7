package repositories

import (
	"context"
	"time"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	// MarkOverdue flips pending invoices due before now to overdue.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	NextInvoiceSequence(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Invoice, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Invoice, error)
	ListByContractID(ctx context.Context, contractID int64) ([]models.Invoice, error)
}

type invoiceRepo struct {
	db DBTX
}

func NewInvoiceRepo(db DBTX) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, invoice_number, contract_id, amount, due_date, issue_date, status, description, created_at, updated_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ContractID, &inv.Amount, &inv.DueDate, &inv.IssueDate,
		&inv.Status, &inv.Description, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return inv, nil
}

func (r *invoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_number, contract_id, amount, due_date, issue_date, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, inv.InvoiceNumber, inv.ContractID, inv.Amount, inv.DueDate, inv.IssueDate,
		inv.Status, inv.Description).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	return translateError(err)
}

func (r *invoiceRepo) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(r.db.QueryRow(ctx, query, id))
}

func (r *invoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = $1, contract_id = $2, amount = $3, due_date = $4, issue_date = $5,
			status = $6, description = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, inv.InvoiceNumber, inv.ContractID, inv.Amount, inv.DueDate, inv.IssueDate,
		inv.Status, inv.Description, inv.ID).Scan(&inv.UpdatedAt)
	return translateError(err)
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`
	return mustAffect(r.db.Exec(ctx, query, status, id))
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE invoices
		SET status = 'overdue', updated_at = NOW()
		WHERE status = 'pending' AND due_date < $1
	`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, translateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *invoiceRepo) NextInvoiceSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq)
	return seq, translateError(err)
}

func (r *invoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id))
}

func (r *invoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *invoiceRepo) ListByIDs(ctx context.Context, ids []int64) ([]models.Invoice, error) {
	if len(ids) == 0 {
		return []models.Invoice{}, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ANY($1)`
	return r.query(ctx, query, ids)
}

func (r *invoiceRepo) ListByContractID(ctx context.Context, contractID int64) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE contract_id = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, contractID)
}

func (r *invoiceRepo) query(ctx context.Context, query string, args ...any) ([]models.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	invoices := make([]models.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
