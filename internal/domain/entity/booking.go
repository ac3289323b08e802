package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a patient visit request. DoctorID stays nil until staff assign one.
type Booking struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientName  string        `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientPhone string        `gorm:"type:varchar(20);not null" json:"patient_phone"`
	ServiceID    *uuid.UUID    `gorm:"type:uuid;index" json:"service_id"`
	DoctorID     *uuid.UUID    `gorm:"type:uuid;index:idx_bookings_doctor_time" json:"doctor_id"`
	BookingTime  time.Time     `gorm:"type:timestamptz;not null;index:idx_bookings_doctor_time" json:"booking_time"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AssignedBy   *uuid.UUID    `gorm:"type:uuid" json:"assigned_by,omitempty"`
	StaffNote    string        `gorm:"type:text" json:"staff_note,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsAssignable reports whether staff may (re)assign a doctor.
func (b *Booking) IsAssignable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Occupies reports whether the booking holds its doctor's time.
func (b *Booking) Occupies() bool {
	return !b.IsCancelled() && b.DoctorID != nil
}

// Interval is the time the booking occupies, sized by its service duration.
func (b *Booking) Interval(def time.Duration) Interval {
	return NewInterval(b.BookingTime, b.Service.Duration(def))
}

// AssignTo sets the doctor and confirms the booking.
func (b *Booking) AssignTo(doctorID uuid.UUID, assignedBy *uuid.UUID) {
	b.DoctorID = &doctorID
	b.AssignedBy = assignedBy
	b.Status = BookingStatusConfirmed
}
