package dto

import (
	"github.com/google/uuid"
)

type ScheduleGridResponse struct {
	Schedules []DoctorGridResponse `json:"schedules"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
}

type DoctorGridResponse struct {
	DoctorID   uuid.UUID                `json:"doctor_id"`
	DoctorName string                   `json:"doctor_name"`
	Shifts     []ShiftOccupancyResponse `json:"shifts"`
}

type ShiftOccupancyResponse struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxPatients int    `json:"max_patients"`
	BookedCount int    `json:"booked_count"`
	Status      string `json:"status"`
}
