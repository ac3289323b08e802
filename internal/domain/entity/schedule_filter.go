package entity

import "github.com/google/uuid"

// ScheduleFilter is a domain-level filter for querying shifts.
// Used by repository layer to avoid coupling with delivery DTOs.
type ScheduleFilter struct {
	DoctorID      *uuid.UUID
	StartDate     string // Format: YYYY-MM-DD
	EndDate       string // Format: YYYY-MM-DD
	AvailableOnly bool
}
