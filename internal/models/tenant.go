package models

import (
	"time"
)

type Tenant struct {
	ID               int64      `json:"id" db:"id"`
	FirstName        string     `json:"firstName" db:"first_name"`
	LastName         string     `json:"lastName" db:"last_name"`
	Email            string     `json:"email" db:"email"`
	Phone            string     `json:"phone" db:"phone"`
	Address          *string    `json:"address" db:"address"`
	DateOfBirth      *time.Time `json:"dateOfBirth" db:"date_of_birth"`
	EmergencyContact *string    `json:"emergencyContact" db:"emergency_contact"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
