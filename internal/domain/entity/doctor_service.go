package entity

import "github.com/google/uuid"

// DoctorService links a doctor to a service they may be offered for.
type DoctorService struct {
	DoctorID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"doctor_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_id"`
}

func (DoctorService) TableName() string {
	return "doctor_services"
}
