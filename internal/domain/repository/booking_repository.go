package repository

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate locks the booking row until the surrounding transaction ends.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	// FindOccupyingBetween returns non-cancelled, doctor-assigned bookings whose
	// booking_time lies in [from, to], with their service preloaded.
	// A nil doctorID means every doctor.
	FindOccupyingBetween(db *gorm.DB, doctorID *uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	AssignDoctor(db *gorm.DB, booking *entity.Booking) (int64, error)
}
