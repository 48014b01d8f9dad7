package services

import (
	"context"
	"errors"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/metrics"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

type ContractService interface {
	// Create inserts the contract and marks its property rented in one transaction.
	Create(ctx context.Context, req *CreateContractRequest) (*models.Contract, error)
	GetByID(ctx context.Context, id int64) (*models.ContractWithRelations, error)
	Update(ctx context.Context, id int64, req *UpdateContractRequest) (*models.Contract, error)
	// Delete removes the contract and, if it existed, marks its property available.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.ContractWithParties, error)
	ExpireEnded(ctx context.Context, now time.Time) (int, error)
}

type contractService struct {
	repos *repositories.Repositories
	tx    repositories.Transactor
}

func NewContractService(repos *repositories.Repositories, tx repositories.Transactor) ContractService {
	return &contractService{repos: repos, tx: tx}
}

type CreateContractRequest struct {
	PropertyID      int64      `json:"propertyId" validate:"required,gt=0"`
	TenantID        int64      `json:"tenantId" validate:"required,gt=0"`
	StartDate       *Timestamp `json:"startDate" validate:"required"`
	EndDate         *Timestamp `json:"endDate" validate:"required"`
	MonthlyRent     *float64   `json:"monthlyRent" validate:"required,gt=0,money"`
	SecurityDeposit *float64   `json:"securityDeposit" validate:"omitempty,gte=0,money"`
	Status          string     `json:"status" validate:"omitempty,oneof=active expired terminated"`
	Terms           *string    `json:"terms"`
}

type UpdateContractRequest struct {
	PropertyID      *int64     `json:"propertyId" validate:"omitempty,gt=0"`
	TenantID        *int64     `json:"tenantId" validate:"omitempty,gt=0"`
	StartDate       *Timestamp `json:"startDate"`
	EndDate         *Timestamp `json:"endDate"`
	MonthlyRent     *float64   `json:"monthlyRent" validate:"omitempty,gt=0,money"`
	SecurityDeposit *float64   `json:"securityDeposit" validate:"omitempty,gte=0,money"`
	Status          *string    `json:"status" validate:"omitempty,oneof=active expired terminated"`
	Terms           *string    `json:"terms"`
}

func (s *contractService) Create(ctx context.Context, req *CreateContractRequest) (*models.Contract, error) {
	contract := &models.Contract{
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		StartDate:       req.StartDate.Time(),
		EndDate:         req.EndDate.Time(),
		MonthlyRent:     *req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		Status:          req.Status,
		Terms:           req.Terms,
	}
	if contract.Status == "" {
		contract.Status = models.ContractStatusActive
	}
	if err := common.ValidateDateRange(contract.StartDate, contract.EndDate); err != nil {
		return nil, common.ValidationFailure("End date cannot be before start date", err)
	}

	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		if err := r.Contracts.Create(ctx, contract); err != nil {
			return err
		}
		return r.Properties.UpdateStatus(ctx, contract.PropertyID, models.PropertyStatusRented)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ValidationFailure("Referenced property does not exist", err)
		}
		return nil, repoError("Contract", "create contract", err)
	}

	metrics.RecordLifecycleEvent(metrics.EventPropertyRented, 1)
	common.Logger.WithField("contract_id", contract.ID).Debugf("Property %d marked rented", contract.PropertyID)
	return contract, nil
}

func (s *contractService) GetByID(ctx context.Context, id int64) (*models.ContractWithRelations, error) {
	contract, err := s.repos.Contracts.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Contract", "fetch contract", err)
	}

	loader := relationLoader{repos: s.repos}
	parties, err := loader.contractsWithParties(ctx, []models.Contract{*contract})
	if err != nil {
		return nil, common.Unexpected("fetch contract relations", err)
	}
	invoices, err := s.repos.Invoices.ListByContractID(ctx, id)
	if err != nil {
		return nil, common.Unexpected("fetch contract invoices", err)
	}

	return &models.ContractWithRelations{
		Contract: *contract,
		Property: parties[0].Property,
		Tenant:   parties[0].Tenant,
		Invoices: invoices,
	}, nil
}

func (s *contractService) Update(ctx context.Context, id int64, req *UpdateContractRequest) (*models.Contract, error) {
	var updated *models.Contract
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.PropertyID != nil {
			existing.PropertyID = *req.PropertyID
		}
		if req.TenantID != nil {
			existing.TenantID = *req.TenantID
		}
		if req.StartDate != nil {
			existing.StartDate = req.StartDate.Time()
		}
		if req.EndDate != nil {
			existing.EndDate = req.EndDate.Time()
		}
		if req.MonthlyRent != nil {
			existing.MonthlyRent = *req.MonthlyRent
		}
		if req.SecurityDeposit != nil {
			existing.SecurityDeposit = req.SecurityDeposit
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.Terms != nil {
			existing.Terms = req.Terms
		}
		if err := common.ValidateDateRange(existing.StartDate, existing.EndDate); err != nil {
			return common.ValidationFailure("End date cannot be before start date", err)
		}

		if err := r.Contracts.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, repoError("Contract", "update contract", err)
	}
	return updated, nil
}

func (s *contractService) Delete(ctx context.Context, id int64) error {
	released := false
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		contract, err := r.Contracts.GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		deleted, err := r.Contracts.Delete(ctx, id)
		if err != nil || !deleted {
			return err
		}

		if err := r.Properties.UpdateStatus(ctx, contract.PropertyID, models.PropertyStatusAvailable); err != nil {
			// a property that no longer exists has nothing to release
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			return err
		}
		released = true
		return nil
	})
	if err != nil {
		return deleteError("Contract", err)
	}

	if released {
		metrics.RecordLifecycleEvent(metrics.EventPropertyReleased, 1)
	}
	return nil
}

func (s *contractService) List(ctx context.Context) ([]models.ContractWithParties, error) {
	contracts, err := s.repos.Contracts.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch contracts", err)
	}
	expanded, err := relationLoader{repos: s.repos}.contractsWithParties(ctx, contracts)
	if err != nil {
		return nil, common.Unexpected("fetch contract relations", err)
	}
	return expanded, nil
}

// ExpireEnded expires active contracts past their end date and releases each
// affected property that has no other active contract. It returns the number
// of released properties.
func (s *contractService) ExpireEnded(ctx context.Context, now time.Time) (int, error) {
	var expired, released int
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		propertyIDs, n, err := r.Contracts.ExpireEnded(ctx, now)
		if err != nil {
			return err
		}
		expired = n
		for _, propertyID := range propertyIDs {
			ok, err := r.Properties.ReleaseIfVacant(ctx, propertyID)
			if err != nil {
				return err
			}
			if ok {
				released++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.RecordLifecycleEvent(metrics.EventContractExpired, expired)
	metrics.RecordLifecycleEvent(metrics.EventPropertyReleased, released)
	return released, nil
}
