package services

import (
	"context"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

type MaintenanceService interface {
	Create(ctx context.Context, req *CreateMaintenanceRequest) (*models.MaintenanceRequest, error)
	GetByID(ctx context.Context, id int64) (*models.MaintenanceWithRelations, error)
	Update(ctx context.Context, id int64, req *UpdateMaintenanceRequest) (*models.MaintenanceRequest, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.MaintenanceWithRelations, error)
}

type maintenanceService struct {
	repos *repositories.Repositories
	tx    repositories.Transactor
	now   func() time.Time
}

func NewMaintenanceService(repos *repositories.Repositories, tx repositories.Transactor) MaintenanceService {
	return &maintenanceService{repos: repos, tx: tx, now: time.Now}
}

type CreateMaintenanceRequest struct {
	PropertyID    int64      `json:"propertyId" validate:"required,gt=0"`
	TenantID      *int64     `json:"tenantId" validate:"omitempty,gt=0"`
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	Priority      string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	EstimatedCost *float64   `json:"estimatedCost" validate:"omitempty,gte=0,money"`
	ActualCost    *float64   `json:"actualCost" validate:"omitempty,gte=0,money"`
	CompletedAt   *Timestamp `json:"completedAt"`
}

type UpdateMaintenanceRequest struct {
	PropertyID    *int64     `json:"propertyId" validate:"omitempty,gt=0"`
	TenantID      *int64     `json:"tenantId" validate:"omitempty,gt=0"`
	Title         *string    `json:"title" validate:"omitempty,min=1"`
	Description   *string    `json:"description" validate:"omitempty,min=1"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status        *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	EstimatedCost *float64   `json:"estimatedCost" validate:"omitempty,gte=0,money"`
	ActualCost    *float64   `json:"actualCost" validate:"omitempty,gte=0,money"`
	CompletedAt   *Timestamp `json:"completedAt"`
}

func (s *maintenanceService) Create(ctx context.Context, req *CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	m := &models.MaintenanceRequest{
		PropertyID:    req.PropertyID,
		TenantID:      req.TenantID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		CompletedAt:   timePtr(req.CompletedAt),
	}
	if m.Priority == "" {
		m.Priority = models.MaintenancePriorityMedium
	}
	if m.Status == "" {
		m.Status = models.MaintenanceStatusPending
	}
	s.stampCompletion(m)

	if err := s.repos.Maintenance.Create(ctx, m); err != nil {
		return nil, repoError("Maintenance request", "create maintenance request", err)
	}
	return m, nil
}

// stampCompletion records when a request first reaches completed.
func (s *maintenanceService) stampCompletion(m *models.MaintenanceRequest) {
	if m.Status == models.MaintenanceStatusCompleted && m.CompletedAt == nil {
		now := s.now()
		m.CompletedAt = &now
	}
}

func (s *maintenanceService) GetByID(ctx context.Context, id int64) (*models.MaintenanceWithRelations, error) {
	m, err := s.repos.Maintenance.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Maintenance request", "fetch maintenance request", err)
	}
	expanded, err := relationLoader{repos: s.repos}.maintenanceWithRelations(ctx, []models.MaintenanceRequest{*m})
	if err != nil {
		return nil, common.Unexpected("fetch maintenance request relations", err)
	}
	return &expanded[0], nil
}

func (s *maintenanceService) Update(ctx context.Context, id int64, req *UpdateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	var updated *models.MaintenanceRequest
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Maintenance.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.PropertyID != nil {
			existing.PropertyID = *req.PropertyID
		}
		if req.TenantID != nil {
			existing.TenantID = req.TenantID
		}
		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Priority != nil {
			existing.Priority = *req.Priority
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.EstimatedCost != nil {
			existing.EstimatedCost = req.EstimatedCost
		}
		if req.ActualCost != nil {
			existing.ActualCost = req.ActualCost
		}
		if req.CompletedAt != nil {
			existing.CompletedAt = timePtr(req.CompletedAt)
		}
		s.stampCompletion(existing)

		if err := r.Maintenance.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, repoError("Maintenance request", "update maintenance request", err)
	}
	return updated, nil
}

func (s *maintenanceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Maintenance.Delete(ctx, id); err != nil {
		return deleteError("Maintenance request", err)
	}
	return nil
}

func (s *maintenanceService) List(ctx context.Context) ([]models.MaintenanceWithRelations, error) {
	requests, err := s.repos.Maintenance.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch maintenance requests", err)
	}
	expanded, err := relationLoader{repos: s.repos}.maintenanceWithRelations(ctx, requests)
	if err != nil {
		return nil, common.Unexpected("fetch maintenance request relations", err)
	}
	return expanded, nil
}
