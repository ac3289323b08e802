package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AssignDoctorRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
}

// Response DTOs

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	PatientName  string     `json:"patient_name"`
	PatientPhone string     `json:"patient_phone"`
	ServiceID    *uuid.UUID `json:"service_id"`
	DoctorID     *uuid.UUID `json:"doctor_id"`
	BookingTime  time.Time  `json:"booking_time"`
	Status       string     `json:"status"`
	AssignedBy   *uuid.UUID `json:"assigned_by,omitempty"`
	StaffNote    string     `json:"staff_note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
