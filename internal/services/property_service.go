package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"

	"github.com/google/uuid"
)

const imageURLExpiry = 15 * time.Minute

type PropertyService interface {
	Create(ctx context.Context, req *CreatePropertyRequest) (*models.Property, error)
	GetByID(ctx context.Context, id int64) (*models.PropertyWithRelations, error)
	Update(ctx context.Context, id int64, req *UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Property, error)
	UploadImage(ctx context.Context, id int64, upload *ImageUpload) (*models.Property, error)
	ImageURL(ctx context.Context, id int64) (string, error)
}

type propertyService struct {
	repos  *repositories.Repositories
	tx     repositories.Transactor
	images ImageStore
}

// NewPropertyService wires the property service. images may be nil, in which
// case image endpoints report the feature as unavailable.
func NewPropertyService(repos *repositories.Repositories, tx repositories.Transactor, images ImageStore) PropertyService {
	return &propertyService{repos: repos, tx: tx, images: images}
}

type CreatePropertyRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Address      string   `json:"address" validate:"required"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house commercial"`
	Bedrooms     *int     `json:"bedrooms" validate:"required,gte=0"`
	Bathrooms    *float64 `json:"bathrooms" validate:"required,gte=0"`
	MonthlyRent  *float64 `json:"monthlyRent" validate:"required,gt=0,money"`
	Status       string   `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
}

type UpdatePropertyRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Address      *string  `json:"address" validate:"omitempty,min=1"`
	PropertyType *string  `json:"propertyType" validate:"omitempty,oneof=apartment house commercial"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *float64 `json:"bathrooms" validate:"omitempty,gte=0"`
	MonthlyRent  *float64 `json:"monthlyRent" validate:"omitempty,gt=0,money"`
	Status       *string  `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

func (s *propertyService) Create(ctx context.Context, req *CreatePropertyRequest) (*models.Property, error) {
	property := &models.Property{
		Name:         req.Name,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		Bedrooms:     *req.Bedrooms,
		Bathrooms:    *req.Bathrooms,
		MonthlyRent:  *req.MonthlyRent,
		Status:       req.Status,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusAvailable
	}

	if err := s.repos.Properties.Create(ctx, property); err != nil {
		return nil, repoError("Property", "create property", err)
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id int64) (*models.PropertyWithRelations, error) {
	property, err := s.repos.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Property", "fetch property", err)
	}

	contracts, err := s.repos.Contracts.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, common.Unexpected("fetch property contracts", err)
	}
	requests, err := s.repos.Maintenance.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, common.Unexpected("fetch property maintenance requests", err)
	}

	tenantIDs := make([]int64, 0, len(contracts)+len(requests))
	for _, c := range contracts {
		tenantIDs = append(tenantIDs, c.TenantID)
	}
	for _, m := range requests {
		if m.TenantID != nil {
			tenantIDs = append(tenantIDs, *m.TenantID)
		}
	}
	tenants, err := relationLoader{repos: s.repos}.tenants(ctx, tenantIDs)
	if err != nil {
		return nil, common.Unexpected("fetch property tenants", err)
	}

	result := &models.PropertyWithRelations{
		Property:            *property,
		Contracts:           make([]models.ContractWithTenant, 0, len(contracts)),
		MaintenanceRequests: make([]models.MaintenanceWithTenant, 0, len(requests)),
	}
	for _, c := range contracts {
		result.Contracts = append(result.Contracts, models.ContractWithTenant{Contract: c, Tenant: tenants[c.TenantID]})
	}
	for _, m := range requests {
		item := models.MaintenanceWithTenant{MaintenanceRequest: m}
		if m.TenantID != nil {
			item.Tenant = tenants[*m.TenantID]
		}
		result.MaintenanceRequests = append(result.MaintenanceRequests, item)
	}
	return result, nil
}

func (s *propertyService) Update(ctx context.Context, id int64, req *UpdatePropertyRequest) (*models.Property, error) {
	var updated *models.Property
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Properties.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Address != nil {
			existing.Address = *req.Address
		}
		if req.PropertyType != nil {
			existing.PropertyType = *req.PropertyType
		}
		if req.Bedrooms != nil {
			existing.Bedrooms = *req.Bedrooms
		}
		if req.Bathrooms != nil {
			existing.Bathrooms = *req.Bathrooms
		}
		if req.MonthlyRent != nil {
			existing.MonthlyRent = *req.MonthlyRent
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.ImageURL != nil {
			existing.ImageURL = req.ImageURL
		}

		if err := r.Properties.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, repoError("Property", "update property", err)
	}
	return updated, nil
}

func (s *propertyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Properties.Delete(ctx, id); err != nil {
		return deleteError("Property", err)
	}
	return nil
}

func (s *propertyService) List(ctx context.Context) ([]models.Property, error) {
	properties, err := s.repos.Properties.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch properties", err)
	}
	return properties, nil
}

func (s *propertyService) UploadImage(ctx context.Context, id int64, upload *ImageUpload) (*models.Property, error) {
	if s.images == nil {
		return nil, errImagesDisabled
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, common.ValidationFailure("Only image uploads are accepted", nil)
	}

	property, err := s.repos.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Property", "fetch property", err)
	}

	objectName := fmt.Sprintf("properties/%d/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(upload.Filename)))
	if err := s.images.Upload(ctx, objectName, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return nil, common.Unexpected("upload property image", err)
	}

	updatedAt, err := s.repos.Properties.SetImageURL(ctx, id, objectName)
	if err != nil {
		if delErr := s.images.Delete(ctx, objectName); delErr != nil {
			common.Logger.WithError(delErr).Warnf("Orphaned property image %s", objectName)
		}
		return nil, repoError("Property", "store property image", err)
	}

	previous := property.ImageURL
	if previous != nil && *previous != "" && !isAbsoluteURL(*previous) {
		if err := s.images.Delete(ctx, *previous); err != nil {
			common.Logger.WithError(err).Warnf("Failed to remove replaced property image %s", *previous)
		}
	}

	property.ImageURL = &objectName
	property.UpdatedAt = updatedAt
	return property, nil
}

func (s *propertyService) ImageURL(ctx context.Context, id int64) (string, error) {
	property, err := s.repos.Properties.GetByID(ctx, id)
	if err != nil {
		return "", repoError("Property", "fetch property", err)
	}
	if property.ImageURL == nil || *property.ImageURL == "" {
		return "", common.NotFound("Property image")
	}
	if isAbsoluteURL(*property.ImageURL) {
		return *property.ImageURL, nil
	}
	if s.images == nil {
		return "", errImagesDisabled
	}

	url, err := s.images.PresignedURL(ctx, *property.ImageURL, imageURLExpiry)
	if err != nil {
		return "", common.Unexpected("sign property image url", err)
	}
	return url, nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
