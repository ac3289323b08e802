package repository

import (
	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const scheduleInsertBatchSize = 200

type doctorScheduleRepository struct{}

func NewDoctorScheduleRepository() domainRepo.DoctorScheduleRepository {
	return &doctorScheduleRepository{}
}

// Find returns shifts matching the filter ordered by date and start time.
// Dates are compared as civil YYYY-MM-DD strings against the DATE column.
func (r *doctorScheduleRepository) Find(db *gorm.DB, filter *entity.ScheduleFilter) ([]entity.DoctorSchedule, error) {
	var schedules []entity.DoctorSchedule
	query := db.Model(&entity.DoctorSchedule{})

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.StartDate != "" {
			query = query.Where("date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("date <= ?", filter.EndDate)
		}
		if filter.AvailableOnly {
			query = query.Where("is_available = ?", true)
		}
	}

	err := query.Order("date ASC, start_time ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *doctorScheduleRepository) CreateBatch(db *gorm.DB, schedules []entity.DoctorSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return db.CreateInBatches(&schedules, scheduleInsertBatchSize).Error
}

func (r *doctorScheduleRepository) DeleteByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, startDate, endDate string) (int64, error) {
	result := db.Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, startDate, endDate).
		Delete(&entity.DoctorSchedule{})
	return result.RowsAffected, result.Error
}
