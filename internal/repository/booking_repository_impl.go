package repository

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Service").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Service").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindOccupyingBetween(db *gorm.DB, doctorID *uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := db.Preload("Service").
		Where("status <> ?", string(entity.BookingStatusCancelled)).
		Where("doctor_id IS NOT NULL").
		Where("booking_time >= ? AND booking_time <= ?", from, to)

	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}

	err := query.Order("booking_time ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// AssignDoctor writes the doctor, status and assigner of a booking, guarded so that a
// booking that left the assignable states in the meantime is not touched.
// Returns affected rows: 1 = assigned, 0 = no longer assignable.
func (r *bookingRepository) AssignDoctor(db *gorm.DB, booking *entity.Booking) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status IN ?", booking.ID, []string{
			string(entity.BookingStatusPending),
			string(entity.BookingStatusConfirmed),
		}).
		Updates(map[string]interface{}{
			"doctor_id":   booking.DoctorID,
			"status":      string(booking.Status),
			"assigned_by": booking.AssignedBy,
		})
	return result.RowsAffected, result.Error
}
