package models

import (
	"time"
)

const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"

	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"
)

type MaintenanceRequest struct {
	ID            int64      `json:"id" db:"id"`
	PropertyID    int64      `json:"propertyId" db:"property_id"`
	TenantID      *int64     `json:"tenantId" db:"tenant_id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Priority      string     `json:"priority" db:"priority"`
	Status        string     `json:"status" db:"status"`
	EstimatedCost *float64   `json:"estimatedCost" db:"estimated_cost"`
	ActualCost    *float64   `json:"actualCost" db:"actual_cost"`
	CompletedAt   *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
