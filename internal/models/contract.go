package models

import (
	"time"
)

const (
	ContractStatusActive     = "active"
	ContractStatusExpired    = "expired"
	ContractStatusTerminated = "terminated"
)

type Contract struct {
	ID              int64     `json:"id" db:"id"`
	PropertyID      int64     `json:"propertyId" db:"property_id"`
	TenantID        int64     `json:"tenantId" db:"tenant_id"`
	StartDate       time.Time `json:"startDate" db:"start_date"`
	EndDate         time.Time `json:"endDate" db:"end_date"`
	MonthlyRent     float64   `json:"monthlyRent" db:"monthly_rent"`
	SecurityDeposit *float64  `json:"securityDeposit" db:"security_deposit"`
	Status          string    `json:"status" db:"status"`
	Terms           *string   `json:"terms" db:"terms"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
