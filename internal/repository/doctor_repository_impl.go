package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Preload("Services").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("User").
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").Preload("Services").Order("created_at ASC, id ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// FindListed returns doctors whose directory flag is set, regardless of account state.
func (r *doctorRepository) FindListed(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").
		Where("is_available = ?", true).
		Order("created_at ASC, id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// FindByService returns every doctor linked to the service. Activity flags are not
// filtered here; callers decide eligibility.
func (r *doctorRepository) FindByService(db *gorm.DB, serviceID uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").
		Joins("JOIN doctor_services ON doctor_services.doctor_id = doctors.id").
		Where("doctor_services.service_id = ?", serviceID).
		Order("doctors.created_at ASC, doctors.id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) HasService(db *gorm.DB, doctorID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorService{}).
		Where("doctor_id = ? AND service_id = ?", doctorID, serviceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit(clause.Associations).Save(doctor).Error
}

// ReplaceServices swaps the doctor's capability links for the given set.
// Run it inside a transaction.
func (r *doctorRepository) ReplaceServices(db *gorm.DB, doctorID uuid.UUID, serviceIDs []uuid.UUID) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorService{}).Error; err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(serviceIDs))
	links := make([]entity.DoctorService, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, entity.DoctorService{DoctorID: doctorID, ServiceID: id})
	}
	if len(links) == 0 {
		return nil
	}

	return db.Create(&links).Error
}
