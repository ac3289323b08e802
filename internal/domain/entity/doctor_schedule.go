package entity

import (
	"time"

	"clinic-scheduler/pkg/clinictime"

	"github.com/google/uuid"
)

// DefaultShiftCapacity is used when a shift is created without max_patients.
const DefaultShiftCapacity = 10

// DoctorSchedule is one working shift of a doctor on a civil calendar day.
// Date has no zone; StartTime and EndTime are civil times of day.
// Shifts of the same doctor and day may overlap.
type DoctorSchedule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index:idx_doctor_schedules_doctor_date" json:"doctor_id"`
	Date        time.Time `gorm:"type:date;not null;index:idx_doctor_schedules_doctor_date;index" json:"date"`
	StartTime   string    `gorm:"type:time;not null" json:"start_time"`
	EndTime     string    `gorm:"type:time;not null" json:"end_time"`
	ShiftName   string    `gorm:"type:varchar(50)" json:"shift_name,omitempty"`
	MaxPatients *int      `json:"max_patients"`
	IsAvailable *bool     `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}

// DateString formats the civil date as YYYY-MM-DD.
func (s *DoctorSchedule) DateString() string {
	return s.Date.Format(clinictime.DateLayout)
}

// Bounds parses the shift's start and end times of day.
func (s *DoctorSchedule) Bounds() (clinictime.TimeOfDay, clinictime.TimeOfDay, error) {
	start, err := clinictime.ParseTimeOfDay(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := clinictime.ParseTimeOfDay(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Covers reports whether the window lies entirely inside this shift on the same civil
// day. Both boundaries are inclusive. A shift with unreadable times covers nothing.
func (s *DoctorSchedule) Covers(w clinictime.Window) bool {
	if s.DateString() != w.Date {
		return false
	}
	start, end, err := s.Bounds()
	if err != nil {
		return false
	}
	return start <= w.StartOffset && end >= w.EndOffset
}

// Contains reports whether a wall-clock time falls in [start, end).
func (s *DoctorSchedule) Contains(t clinictime.TimeOfDay) bool {
	start, end, err := s.Bounds()
	if err != nil {
		return false
	}
	return t >= start && t < end
}

// Open reports the shift's availability flag. A missing flag counts as closed.
func (s *DoctorSchedule) Open() bool {
	return s.IsAvailable != nil && *s.IsAvailable
}

// Capacity returns max_patients, zero when unset.
func (s *DoctorSchedule) Capacity() int {
	if s.MaxPatients == nil || *s.MaxPatients < 0 {
		return 0
	}
	return *s.MaxPatients
}
