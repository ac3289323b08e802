package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type ResolveAvailabilityRequest struct {
	ServiceID   string `json:"service_id" validate:"required,uuid"`
	BookingTime string `json:"booking_time" validate:"required"`
}

// Response DTOs

type AvailableDoctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Degree    string    `json:"degree"`
}
