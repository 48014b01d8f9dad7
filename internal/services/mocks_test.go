package services

import (
	"context"
	"time"

	"propertymanager/internal/models"
	"propertymanager/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// inlineTx runs the callback against the same mocked repositories. It mirrors
// the commit/rollback contract by returning fn's error unchanged.
type inlineTx struct {
	repos *repositories.Repositories
	calls int
}

func (t *inlineTx) WithinTx(ctx context.Context, fn func(r *repositories.Repositories) error) error {
	t.calls++
	return fn(t.repos)
}

type mockRepos struct {
	users       *MockUserRepository
	properties  *MockPropertyRepository
	tenants     *MockTenantRepository
	contracts   *MockContractRepository
	invoices    *MockInvoiceRepository
	maintenance *MockMaintenanceRepository
	payments    *MockPaymentRepository
}

func newMockRepos() (*mockRepos, *repositories.Repositories, *inlineTx) {
	m := &mockRepos{
		users:       &MockUserRepository{},
		properties:  &MockPropertyRepository{},
		tenants:     &MockTenantRepository{},
		contracts:   &MockContractRepository{},
		invoices:    &MockInvoiceRepository{},
		maintenance: &MockMaintenanceRepository{},
		payments:    &MockPaymentRepository{},
	}
	repos := &repositories.Repositories{
		Users:       m.users,
		Properties:  m.properties,
		Tenants:     m.tenants,
		Contracts:   m.contracts,
		Invoices:    m.invoices,
		Maintenance: m.maintenance,
		Payments:    m.payments,
	}
	return m, repos, &inlineTx{repos: repos}
}

func (m *mockRepos) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.properties.AssertExpectations(t)
	m.tenants.AssertExpectations(t)
	m.contracts.AssertExpectations(t)
	m.invoices.AssertExpectations(t)
	m.maintenance.AssertExpectations(t)
	m.payments.AssertExpectations(t)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPropertyRepository) SetImageURL(ctx context.Context, id int64, imageURL string) (time.Time, error) {
	args := m.Called(ctx, id, imageURL)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockPropertyRepository) ReleaseIfVacant(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Property, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Property), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Tenant, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Tenant), args.Error(1)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context) ([]models.Contract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Contract, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListByPropertyID(ctx context.Context, propertyID int64) ([]models.Contract, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *MockContractRepository) ExpireEnded(ctx context.Context, now time.Time) ([]int64, int, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]int64), args.Int(1), args.Error(2)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Invoice, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByContractID(ctx context.Context, contractID int64) ([]models.Invoice, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]models.Invoice), args.Error(1)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaintenanceRepository) List(ctx context.Context) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) ListByPropertyID(ctx context.Context, propertyID int64) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]models.MaintenanceRequest), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByInvoiceID(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]models.Payment), args.Error(1)
}

type fakeSessionStore struct {
	sessions map[string]*models.Session
	limited  bool
	err      error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, session *models.Session) error {
	if f.err != nil {
		return f.err
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[id], nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return f.limited, nil
}
