package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/pkg/clinictime"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errStoreDown = errors.New("connection refused")

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSettings(t *testing.T) ClinicSettings {
	t.Helper()
	zone, err := clinictime.NewZone("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatal(err)
	}
	return ClinicSettings{
		Zone:            zone,
		DefaultDuration: entity.DefaultServiceDuration,
		GridMaxDays:     62,
	}
}

// localTime builds an instant from clinic wall-clock time (UTC+7).
func localTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value+"+07:00")
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", value, err)
	}
	return ts
}

func newService(minutes *int) *entity.Service {
	return &entity.Service{ID: uuid.New(), Name: "Consultation", DurationMinutes: minutes}
}

func newDoctor(name string, listed, active bool) entity.Doctor {
	userID := uuid.New()
	return entity.Doctor{
		ID:          uuid.New(),
		UserID:      &userID,
		Specialty:   "General",
		Degree:      "MD",
		IsAvailable: boolPtr(listed),
		User:        &entity.User{ID: userID, Name: name, Role: entity.RoleDoctor, IsActive: boolPtr(active)},
	}
}

func testShift(t *testing.T, doctorID uuid.UUID, date, start, end string, maxPatients int) entity.DoctorSchedule {
	t.Helper()
	d, err := clinictime.ParseCivilDate(date)
	if err != nil {
		t.Fatal(err)
	}
	return entity.DoctorSchedule{
		ID:          uuid.New(),
		DoctorID:    doctorID,
		Date:        d,
		StartTime:   start,
		EndTime:     end,
		MaxPatients: intPtr(maxPatients),
		IsAvailable: boolPtr(true),
	}
}

func newBooking(doctorID *uuid.UUID, service *entity.Service, at time.Time, status entity.BookingStatus) entity.Booking {
	b := entity.Booking{
		ID:           uuid.New(),
		PatientName:  "Patient",
		PatientPhone: "0900000000",
		DoctorID:     doctorID,
		BookingTime:  at,
		Status:       status,
		Service:      service,
	}
	if service != nil {
		b.ServiceID = &service.ID
	}
	return b
}

// Fake repositories ignore the *gorm.DB they are handed.

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
	err      error
}

func (r *fakeServiceRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.services[id], nil
}

type fakeDoctorRepo struct {
	doctors []entity.Doctor
	links   map[uuid.UUID][]uuid.UUID // doctor -> services
	err     error

	updated    *entity.Doctor
	replaced   []uuid.UUID
	replaceErr error
}

func (r *fakeDoctorRepo) find(id uuid.UUID) *entity.Doctor {
	for i := range r.doctors {
		if r.doctors[i].ID == id {
			d := r.doctors[i]
			return &d
		}
	}
	return nil
}

func (r *fakeDoctorRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.find(id), nil
}

func (r *fakeDoctorRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.FindByID(db, id)
}

func (r *fakeDoctorRepo) FindAll(_ *gorm.DB) ([]entity.Doctor, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]entity.Doctor(nil), r.doctors...), nil
}

func (r *fakeDoctorRepo) FindListed(_ *gorm.DB) ([]entity.Doctor, error) {
	if r.err != nil {
		return nil, r.err
	}
	var listed []entity.Doctor
	for _, d := range r.doctors {
		if d.Listed() {
			listed = append(listed, d)
		}
	}
	return listed, nil
}

func (r *fakeDoctorRepo) FindByService(_ *gorm.DB, serviceID uuid.UUID) ([]entity.Doctor, error) {
	if r.err != nil {
		return nil, r.err
	}
	var capable []entity.Doctor
	for _, d := range r.doctors {
		if r.linked(d.ID, serviceID) {
			capable = append(capable, d)
		}
	}
	return capable, nil
}

func (r *fakeDoctorRepo) linked(doctorID, serviceID uuid.UUID) bool {
	for _, id := range r.links[doctorID] {
		if id == serviceID {
			return true
		}
	}
	return false
}

func (r *fakeDoctorRepo) HasService(_ *gorm.DB, doctorID, serviceID uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.linked(doctorID, serviceID), nil
}

func (r *fakeDoctorRepo) Update(_ *gorm.DB, doctor *entity.Doctor) error {
	d := *doctor
	r.updated = &d
	for i := range r.doctors {
		if r.doctors[i].ID == d.ID {
			r.doctors[i] = d
		}
	}
	return nil
}

func (r *fakeDoctorRepo) ReplaceServices(_ *gorm.DB, _ uuid.UUID, serviceIDs []uuid.UUID) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaced = append([]uuid.UUID{}, serviceIDs...)
	return nil
}

type fakeScheduleRepo struct {
	schedules []entity.DoctorSchedule
	err       error

	deletedRange [2]string
	deleted      int64
	created      []entity.DoctorSchedule
}

func (r *fakeScheduleRepo) Find(_ *gorm.DB, filter *entity.ScheduleFilter) ([]entity.DoctorSchedule, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.DoctorSchedule
	for _, s := range r.schedules {
		date := s.DateString()
		if filter.DoctorID != nil && s.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.StartDate != "" && date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && date > filter.EndDate {
			continue
		}
		if filter.AvailableOnly && !s.Open() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeScheduleRepo) CreateBatch(_ *gorm.DB, schedules []entity.DoctorSchedule) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, schedules...)
	return nil
}

func (r *fakeScheduleRepo) DeleteByDoctorAndDateRange(_ *gorm.DB, _ uuid.UUID, startDate, endDate string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.deletedRange = [2]string{startDate, endDate}
	return r.deleted, nil
}

type fakeBookingRepo struct {
	bookings []entity.Booking
	err      error

	assigned       *entity.Booking
	assignAffected int64
}

func (r *fakeBookingRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(db, id)
}

func (r *fakeBookingRepo) FindOccupyingBetween(_ *gorm.DB, doctorID *uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Booking
	for _, b := range r.bookings {
		if !b.Occupies() {
			continue
		}
		if doctorID != nil && *b.DoctorID != *doctorID {
			continue
		}
		if b.BookingTime.Before(from) || b.BookingTime.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) AssignDoctor(_ *gorm.DB, booking *entity.Booking) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	b := *booking
	r.assigned = &b
	return r.assignAffected, nil
}

type auditEntry struct {
	userID   *uuid.UUID
	action   string
	entityID string
	oldValue interface{}
	newValue interface{}
}

type fakeAuditService struct {
	entries []auditEntry
	err     error
}

func (s *fakeAuditService) LogUpdate(_ context.Context, _ *gorm.DB, userID *uuid.UUID, action, _ string, entityID string, oldValue, newValue interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, auditEntry{userID: userID, action: action, entityID: entityID, oldValue: oldValue, newValue: newValue})
	return nil
}

type fakeGridCache struct {
	grids         map[string]*dto.ScheduleGridResponse
	generation    int64
	sets          int
	invalidations int
}

func newFakeGridCache() *fakeGridCache {
	return &fakeGridCache{grids: make(map[string]*dto.ScheduleGridResponse)}
}

func (c *fakeGridCache) Get(_ context.Context, startDate, endDate string) (*dto.ScheduleGridResponse, int64, bool) {
	grid, ok := c.grids[startDate+"/"+endDate]
	return grid, c.generation, ok
}

func (c *fakeGridCache) Set(_ context.Context, generation int64, startDate, endDate string, grid *dto.ScheduleGridResponse) {
	if generation != c.generation {
		return
	}
	c.sets++
	c.grids[startDate+"/"+endDate] = grid
}

func (c *fakeGridCache) Invalidate(_ context.Context) {
	c.invalidations++
	c.generation++
	c.grids = make(map[string]*dto.ScheduleGridResponse)
}
