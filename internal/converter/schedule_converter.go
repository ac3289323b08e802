package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/pkg/clinictime"
)

// ScheduleToResponse converts a DoctorSchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.DoctorSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.ScheduleResponse{
		ID:          schedule.ID,
		DoctorID:    schedule.DoctorID,
		Date:        schedule.DateString(),
		StartTime:   FormatTimeOfDay(schedule.StartTime),
		EndTime:     FormatTimeOfDay(schedule.EndTime),
		ShiftName:   schedule.ShiftName,
		MaxPatients: schedule.Capacity(),
		IsAvailable: schedule.IsAvailable != nil && *schedule.IsAvailable,
	}
}

// SchedulesToResponses converts a slice of DoctorSchedule entities to slice of ScheduleResponse DTOs
func SchedulesToResponses(schedules []entity.DoctorSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}

// FormatTimeOfDay renders a stored time as HH:MM:SS, leaving unreadable values as they are.
func FormatTimeOfDay(s string) string {
	normalized, err := clinictime.NormalizeTimeOfDay(s)
	if err != nil {
		return s
	}
	return normalized
}
