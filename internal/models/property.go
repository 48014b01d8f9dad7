package models

import (
	"time"
)

const (
	PropertyStatusAvailable   = "available"
	PropertyStatusRented      = "rented"
	PropertyStatusMaintenance = "maintenance"

	PropertyTypeApartment  = "apartment"
	PropertyTypeHouse      = "house"
	PropertyTypeCommercial = "commercial"
)

type Property struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	PropertyType string    `json:"propertyType" db:"property_type"`
	Bedrooms     int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms" db:"bathrooms"`
	MonthlyRent  float64   `json:"monthlyRent" db:"monthly_rent"`
	Status       string    `json:"status" db:"status"`
	Description  *string   `json:"description" db:"description"`
	ImageURL     *string   `json:"imageUrl" db:"image_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
