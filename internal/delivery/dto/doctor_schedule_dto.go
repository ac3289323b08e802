package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// ReplaceScheduleRequest replaces every shift of a doctor between StartDate and
// EndDate. Weekly entries are expanded over the range; Days entries add shifts on
// specific dates.
type ReplaceScheduleRequest struct {
	StartDate string                `json:"start_date" validate:"required,civildate"`
	EndDate   string                `json:"end_date" validate:"required,civildate"`
	Weekly    []WeeklyShiftTemplate `json:"weekly" validate:"omitempty,dive"`
	Days      []DayShiftTemplate    `json:"days" validate:"omitempty,dive"`
}

type WeeklyShiftTemplate struct {
	Weekday *int            `json:"weekday" validate:"required,gte=0,lte=6"`
	Shifts  []ShiftTemplate `json:"shifts" validate:"required,min=1,dive"`
}

type DayShiftTemplate struct {
	Date   string          `json:"date" validate:"required,civildate"`
	Shifts []ShiftTemplate `json:"shifts" validate:"required,min=1,dive"`
}

type ShiftTemplate struct {
	StartTime   string `json:"start_time" validate:"required,timeofday"`
	EndTime     string `json:"end_time" validate:"required,timeofday"`
	MaxPatients *int   `json:"max_patients" validate:"omitempty,gte=0"`
	ShiftName   string `json:"shift_name" validate:"omitempty,max=50"`
}

// Response DTOs

type ScheduleResponse struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ShiftName   string    `json:"shift_name,omitempty"`
	MaxPatients int       `json:"max_patients"`
	IsAvailable bool      `json:"is_available"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}

type ReplaceScheduleResponse struct {
	DoctorID  uuid.UUID          `json:"doctor_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Removed   int64              `json:"removed"`
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
