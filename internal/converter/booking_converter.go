package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:           booking.ID,
		PatientName:  booking.PatientName,
		PatientPhone: booking.PatientPhone,
		ServiceID:    booking.ServiceID,
		DoctorID:     booking.DoctorID,
		BookingTime:  booking.BookingTime,
		Status:       string(booking.Status),
		AssignedBy:   booking.AssignedBy,
		StaffNote:    booking.StaffNote,
		CreatedAt:    booking.CreatedAt,
	}
}
