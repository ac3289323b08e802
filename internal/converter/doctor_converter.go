package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:           doctor.ID,
		UserID:       doctor.UserID,
		Name:         doctor.Name(),
		Specialty:    doctor.Specialty,
		Degree:       doctor.Degree,
		Bio:          doctor.Bio,
		PricePerSlot: doctor.PricePerSlot,
		IsAvailable:  doctor.Listed(),
		IsActive:     doctor.User.Active(),
		ServiceIDs:   doctor.ServiceIDs(),
		CreatedAt:    doctor.CreatedAt,
	}
	if doctor.User != nil {
		response.Email = doctor.User.Email
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorToAvailableResponse projects a doctor onto the fields shown when assigning.
func DoctorToAvailableResponse(doctor *entity.Doctor) dto.AvailableDoctorResponse {
	return dto.AvailableDoctorResponse{
		ID:        doctor.ID,
		Name:      doctor.Name(),
		Specialty: doctor.Specialty,
		Degree:    doctor.Degree,
	}
}
