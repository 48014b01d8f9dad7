// Package testhelpers runs end-to-end scenarios against a real PostgreSQL
// database named by TEST_DATABASE_URL.
package testhelpers

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"propertymanager/internal/repositories"
	"propertymanager/internal/services"
	"propertymanager/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the migrated database and the repositories built on it
type TestDB struct {
	Pool  *pgxpool.Pool
	Repos *repositories.Repositories
	Tx    repositories.Transactor
}

// SetupTestDB migrates the database named by TEST_DATABASE_URL and empties
// every table. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	if err := database.Migrate(connString); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE payments, invoices, maintenance_requests, contracts, tenants, properties, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}

	return &TestDB{
		Pool:  pool,
		Repos: repositories.New(pool),
		Tx:    repositories.NewTransactor(pool),
	}
}

// Decode fills a request struct from JSON, the way the HTTP layer does.
func Decode[T any](t *testing.T, body string) *T {
	t.Helper()
	req := new(T)
	if err := json.Unmarshal([]byte(body), req); err != nil {
		t.Fatalf("Failed to decode %q: %v", body, err)
	}
	return req
}

// Services bundles the services the scenarios drive.
type Services struct {
	Properties services.PropertyService
	Tenants    services.TenantService
	Contracts  services.ContractService
	Invoices   services.InvoiceService
	Payments   services.PaymentService
	Users      services.UserService
}

func NewServices(db *TestDB) *Services {
	return &Services{
		Properties: services.NewPropertyService(db.Repos, db.Tx, nil),
		Tenants:    services.NewTenantService(db.Repos, db.Tx),
		Contracts:  services.NewContractService(db.Repos, db.Tx),
		Invoices:   services.NewInvoiceService(db.Repos, db.Tx),
		Payments:   services.NewPaymentService(db.Repos, db.Tx),
		Users:      services.NewUserService(db.Repos, db.Tx),
	}
}
