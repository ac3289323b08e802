package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// UpdateDoctorRequest patches the directory entry. ServiceIDs, when present, replaces
// the full capability set; an empty list removes every link.
type UpdateDoctorRequest struct {
	Specialty    *string          `json:"specialty" validate:"omitempty,min=2,max=100"`
	Degree       *string          `json:"degree" validate:"omitempty,max=100"`
	Bio          *string          `json:"bio" validate:"omitempty"`
	PricePerSlot *decimal.Decimal `json:"price_per_slot" validate:"omitempty"`
	IsAvailable  *bool            `json:"is_available" validate:"omitempty"`
	ServiceIDs   *[]uuid.UUID     `json:"service_ids" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID           uuid.UUID       `json:"id"`
	UserID       *uuid.UUID      `json:"user_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Specialty    string          `json:"specialty"`
	Degree       string          `json:"degree,omitempty"`
	Bio          string          `json:"bio,omitempty"`
	PricePerSlot decimal.Decimal `json:"price_per_slot"`
	IsAvailable  bool            `json:"is_available"`
	IsActive     bool            `json:"is_active"`
	ServiceIDs   []uuid.UUID     `json:"service_ids"`
	CreatedAt    time.Time       `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
