package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorScheduleRepository interface {
	Find(db *gorm.DB, filter *entity.ScheduleFilter) ([]entity.DoctorSchedule, error)
	CreateBatch(db *gorm.DB, schedules []entity.DoctorSchedule) error
	DeleteByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, startDate, endDate string) (int64, error)
}
