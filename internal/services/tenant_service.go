package services

import (
	"context"

	"propertymanager/internal/common"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id int64) (*models.Tenant, error)
	Update(ctx context.Context, id int64, req *UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Tenant, error)
}

type tenantService struct {
	repos *repositories.Repositories
	tx    repositories.Transactor
}

func NewTenantService(repos *repositories.Repositories, tx repositories.Transactor) TenantService {
	return &tenantService{repos: repos, tx: tx}
}

type CreateTenantRequest struct {
	FirstName        string     `json:"firstName" validate:"required"`
	LastName         string     `json:"lastName" validate:"required"`
	Email            string     `json:"email" validate:"required,email"`
	Phone            string     `json:"phone" validate:"required"`
	Address          *string    `json:"address"`
	DateOfBirth      *Timestamp `json:"dateOfBirth"`
	EmergencyContact *string    `json:"emergencyContact"`
	IsActive         *bool      `json:"isActive"`
}

type UpdateTenantRequest struct {
	FirstName        *string    `json:"firstName" validate:"omitempty,min=1"`
	LastName         *string    `json:"lastName" validate:"omitempty,min=1"`
	Email            *string    `json:"email" validate:"omitempty,email"`
	Phone            *string    `json:"phone" validate:"omitempty,min=1"`
	Address          *string    `json:"address"`
	DateOfBirth      *Timestamp `json:"dateOfBirth"`
	EmergencyContact *string    `json:"emergencyContact"`
	IsActive         *bool      `json:"isActive"`
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	tenant := &models.Tenant{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		DateOfBirth:      timePtr(req.DateOfBirth),
		EmergencyContact: req.EmergencyContact,
		IsActive:         true,
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}

	if err := s.repos.Tenants.Create(ctx, tenant); err != nil {
		return nil, repoError("Tenant", "create tenant", err)
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	tenant, err := s.repos.Tenants.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Tenant", "fetch tenant", err)
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, id int64, req *UpdateTenantRequest) (*models.Tenant, error) {
	var updated *models.Tenant
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Tenants.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.FirstName != nil {
			existing.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			existing.LastName = *req.LastName
		}
		if req.Email != nil {
			existing.Email = *req.Email
		}
		if req.Phone != nil {
			existing.Phone = *req.Phone
		}
		if req.Address != nil {
			existing.Address = req.Address
		}
		if req.DateOfBirth != nil {
			existing.DateOfBirth = timePtr(req.DateOfBirth)
		}
		if req.EmergencyContact != nil {
			existing.EmergencyContact = req.EmergencyContact
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}

		if err := r.Tenants.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, repoError("Tenant", "update tenant", err)
	}
	return updated, nil
}

func (s *tenantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Tenants.Delete(ctx, id); err != nil {
		return deleteError("Tenant", err)
	}
	return nil
}

func (s *tenantService) List(ctx context.Context) ([]models.Tenant, error) {
	tenants, err := s.repos.Tenants.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch tenants", err)
	}
	return tenants, nil
}
