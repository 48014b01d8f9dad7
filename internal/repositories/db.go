package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	Users       UserRepository
	Properties  PropertyRepository
	Tenants     TenantRepository
	Contracts   ContractRepository
	Invoices    InvoiceRepository
	Maintenance MaintenanceRepository
	Payments    PaymentRepository
	Dashboard   DashboardRepository
}

func New(db DBTX) *Repositories {
	return &Repositories{
		Users:       NewUserRepo(db),
		Properties:  NewPropertyRepo(db),
		Tenants:     NewTenantRepo(db),
		Contracts:   NewContractRepo(db),
		Invoices:    NewInvoiceRepo(db),
		Maintenance: NewMaintenanceRepo(db),
		Payments:    NewPaymentRepo(db),
		Dashboard:   NewDashboardRepo(db),
	}
}

// Transactor runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
}

type pgxTransactor struct {
	db DBTX
}

func NewTransactor(db DBTX) Transactor {
	return &pgxTransactor{db: db}
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(r *Repositories) error) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(New(tx))
	})
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pgErr.ConstraintName)
		}
	}
	return err
}

func affected(tag pgconn.CommandTag, err error) (bool, error) {
	if err != nil {
		return false, translateError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// mustAffect turns a zero-row update into ErrNotFound.
func mustAffect(tag pgconn.CommandTag, err error) error {
	ok, err := affected(tag, err)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
