package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	// FindByIDForUpdate locks the doctor row until the surrounding transaction ends.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindListed(db *gorm.DB) ([]entity.Doctor, error)
	FindByService(db *gorm.DB, serviceID uuid.UUID) ([]entity.Doctor, error)
	HasService(db *gorm.DB, doctorID, serviceID uuid.UUID) (bool, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	ReplaceServices(db *gorm.DB, doctorID uuid.UUID, serviceIDs []uuid.UUID) error
}
