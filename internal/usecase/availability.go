package usecase

import (
	"time"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/pkg/clinictime"

	"github.com/google/uuid"
)

// overnightLookback widens the booking prefilter so a booking that started the
// previous evening and runs into the requested day is still checked for overlap.
const overnightLookback = 12 * time.Hour

// ClinicSettings carries the clinic-wide scheduling parameters.
type ClinicSettings struct {
	Zone            *clinictime.Zone
	DefaultDuration time.Duration
	GridMaxDays     int
}

// window projects a requested visit onto the clinic calendar.
func (s ClinicSettings) window(start time.Time, service *entity.Service) clinictime.Window {
	return s.Zone.Window(start, service.Duration(s.DefaultDuration))
}

// bookingScanRange bounds the prefilter for bookings that may collide with a visit
// starting at start. The final collision test runs on absolute intervals.
func (s ClinicSettings) bookingScanRange(start time.Time) (time.Time, time.Time, error) {
	dayStart, dayEnd, err := s.Zone.DayBounds(s.Zone.CivilDate(start))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dayStart.Add(-overnightLookback), dayEnd, nil
}

// availabilityIndex groups the shifts and occupying bookings of one civil day by doctor.
type availabilityIndex struct {
	shifts          map[uuid.UUID][]entity.DoctorSchedule
	bookings        map[uuid.UUID][]entity.Booking
	defaultDuration time.Duration
}

func newAvailabilityIndex(shifts []entity.DoctorSchedule, bookings []entity.Booking, defaultDuration time.Duration) *availabilityIndex {
	ix := &availabilityIndex{
		shifts:          make(map[uuid.UUID][]entity.DoctorSchedule),
		bookings:        make(map[uuid.UUID][]entity.Booking),
		defaultDuration: defaultDuration,
	}
	for _, s := range shifts {
		if !s.Open() {
			continue
		}
		ix.shifts[s.DoctorID] = append(ix.shifts[s.DoctorID], s)
	}
	for _, b := range bookings {
		if !b.Occupies() {
			continue
		}
		ix.bookings[*b.DoctorID] = append(ix.bookings[*b.DoctorID], b)
	}
	return ix
}

// hasCoveringShift reports whether any one shift of the doctor fully contains the window.
func (ix *availabilityIndex) hasCoveringShift(doctorID uuid.UUID, w clinictime.Window) bool {
	shifts := ix.shifts[doctorID]
	for i := range shifts {
		if shifts[i].Covers(w) {
			return true
		}
	}
	return false
}

// collides reports whether an occupying booking of the doctor overlaps the interval.
// The booking with ID exclude is ignored.
func (ix *availabilityIndex) collides(doctorID uuid.UUID, requested entity.Interval, exclude uuid.UUID) bool {
	bookings := ix.bookings[doctorID]
	for i := range bookings {
		if bookings[i].ID == exclude {
			continue
		}
		if bookings[i].Interval(ix.defaultDuration).Overlaps(requested) {
			return true
		}
	}
	return false
}

// canTake applies every assignability rule except the capability link, which the
// caller establishes when fetching candidates.
func (ix *availabilityIndex) canTake(doctor *entity.Doctor, w clinictime.Window, exclude uuid.UUID) bool {
	if !doctor.IsEligible() {
		return false
	}
	if !ix.hasCoveringShift(doctor.ID, w) {
		return false
	}
	return !ix.collides(doctor.ID, entity.Interval{Start: w.Start, End: w.End}, exclude)
}
