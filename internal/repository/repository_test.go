package repository

import (
	"regexp"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func verify(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServiceRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepository()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes"}).
			AddRow(id.String(), "Consultation", 45))

	service, err := repo.FindByID(db, id)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if service == nil || service.ID != id || service.Duration(entity.DefaultServiceDuration) != 45*time.Minute {
		t.Errorf("unexpected service %+v", service)
	}
	verify(t, mock)
}

func TestServiceRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	service, err := NewServiceRepository().FindByID(db, uuid.New())
	if err != nil || service != nil {
		t.Errorf("FindByID() = %v, %v; want nil, nil", service, err)
	}
	verify(t, mock)
}

func TestBookingRepository_FindByIDForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "service_id"}).
			AddRow(id.String(), "pending", nil))

	booking, err := NewBookingRepository().FindByIDForUpdate(db, id)
	if err != nil {
		t.Fatalf("FindByIDForUpdate() error = %v", err)
	}
	if booking == nil || booking.Status != entity.BookingStatusPending || booking.ServiceID != nil {
		t.Errorf("unexpected booking %+v", booking)
	}
	verify(t, mock)
}

func TestBookingRepository_FindOccupyingBetween(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID := uuid.New()
	serviceID := uuid.New()
	from := time.Date(2024, 4, 30, 5, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 16, 59, 59, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "bookings" WHERE status <> $1 AND doctor_id IS NOT NULL AND (booking_time >= $2 AND booking_time <= $3) AND doctor_id = $4 ORDER BY booking_time ASC`)).
		WithArgs("cancelled", from, to, doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "service_id", "booking_time", "status"}).
			AddRow(uuid.NewString(), doctorID.String(), serviceID.String(), from.Add(4*time.Hour), "confirmed"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services" WHERE "services"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes"}).
			AddRow(serviceID.String(), "Scaling", 60))

	bookings, err := NewBookingRepository().FindOccupyingBetween(db, &doctorID, from, to)
	if err != nil {
		t.Fatalf("FindOccupyingBetween() error = %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	if bookings[0].Service == nil || bookings[0].Interval(entity.DefaultServiceDuration).End.Sub(bookings[0].BookingTime) != time.Hour {
		t.Errorf("service not preloaded: %+v", bookings[0])
	}
	verify(t, mock)
}

func TestBookingRepository_AssignDoctor(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID := uuid.New()
	actor := uuid.New()
	booking := &entity.Booking{ID: uuid.New()}
	booking.AssignTo(doctorID, &actor)

	mock.ExpectExec(`UPDATE "bookings" SET .* WHERE id = \$\d+ AND status IN \(\$\d+,\$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewBookingRepository().AssignDoctor(db, booking)
	if err != nil {
		t.Fatalf("AssignDoctor() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
	verify(t, mock)
}

func TestDoctorScheduleRepository_Find(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID := uuid.New()
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "doctor_schedules" WHERE doctor_id = $1 AND date >= $2 AND date <= $3 AND is_available = $4 ORDER BY date ASC, start_time ASC`)).
		WithArgs(doctorID.String(), "2024-05-01", "2024-05-07", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "date", "start_time", "end_time", "max_patients", "is_available"}).
			AddRow(uuid.NewString(), doctorID.String(), date, "08:00:00", "12:00:00", 10, true))

	schedules, err := NewDoctorScheduleRepository().Find(db, &entity.ScheduleFilter{
		DoctorID:      &doctorID,
		StartDate:     "2024-05-01",
		EndDate:       "2024-05-07",
		AvailableOnly: true,
	})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(schedules) != 1 || schedules[0].DateString() != "2024-05-01" || schedules[0].Capacity() != 10 || !schedules[0].Open() {
		t.Errorf("unexpected schedules %+v", schedules)
	}
	verify(t, mock)
}

func TestDoctorScheduleRepository_DeleteByDoctorAndDateRange(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "doctor_schedules" WHERE doctor_id = $1 AND date >= $2 AND date <= $3`)).
		WithArgs(doctorID.String(), "2024-05-01", "2024-05-31").
		WillReturnResult(sqlmock.NewResult(0, 4))

	removed, err := NewDoctorScheduleRepository().DeleteByDoctorAndDateRange(db, doctorID, "2024-05-01", "2024-05-31")
	if err != nil {
		t.Fatalf("DeleteByDoctorAndDateRange() error = %v", err)
	}
	if removed != 4 {
		t.Errorf("removed = %d, want 4", removed)
	}
	verify(t, mock)
}

func TestDoctorScheduleRepository_CreateBatchEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	if err := NewDoctorScheduleRepository().CreateBatch(db, nil); err != nil {
		t.Errorf("CreateBatch(nil) error = %v", err)
	}
	verify(t, mock)
}

func TestDoctorRepository_HasService(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID, serviceID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "doctor_services" WHERE doctor_id = $1 AND service_id = $2`)).
		WithArgs(doctorID.String(), serviceID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := NewDoctorRepository().HasService(db, doctorID, serviceID)
	if err != nil || !ok {
		t.Errorf("HasService() = %v, %v; want true, nil", ok, err)
	}
	verify(t, mock)
}

func TestDoctorRepository_ReplaceServicesDeduplicates(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID, a, b := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "doctor_services" WHERE doctor_id = $1`)).
		WithArgs(doctorID.String()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "doctor_services"`)).
		WithArgs(doctorID.String(), a.String(), doctorID.String(), b.String()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := NewDoctorRepository().ReplaceServices(db, doctorID, []uuid.UUID{a, b, a}); err != nil {
		t.Fatalf("ReplaceServices() error = %v", err)
	}
	verify(t, mock)
}

func TestDoctorRepository_ReplaceServicesEmptyOnlyDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	doctorID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "doctor_services"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := NewDoctorRepository().ReplaceServices(db, doctorID, []uuid.UUID{}); err != nil {
		t.Fatalf("ReplaceServices() error = %v", err)
	}
	verify(t, mock)
}

func TestDoctorRepository_FindByService(t *testing.T) {
	db, mock := newMockDB(t)
	serviceID, doctorID, userID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`FROM "doctors" JOIN doctor_services ON doctor_services.doctor_id = doctors.id WHERE doctor_services.service_id = \$1`).
		WithArgs(serviceID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "specialty", "is_available"}).
			AddRow(doctorID.String(), userID.String(), "General", true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow(userID.String(), "Dr. Alice", true))

	doctors, err := NewDoctorRepository().FindByService(db, serviceID)
	if err != nil {
		t.Fatalf("FindByService() error = %v", err)
	}
	if len(doctors) != 1 || !doctors[0].IsEligible() || doctors[0].Name() != "Dr. Alice" {
		t.Errorf("unexpected doctors %+v", doctors)
	}
	verify(t, mock)
}

func TestAuditLogRepository_FindAll(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "audit_logs" ORDER BY created_at DESC, id DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "metadata"}).
			AddRow(int64(3), entity.AuditActionScheduleReplace, []byte(`{"entity":"doctor_schedule"}`)))

	logs, err := NewAuditLogRepository().FindAll(db, 20)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(logs) != 1 || logs[0].Metadata["entity"] != "doctor_schedule" {
		t.Errorf("unexpected logs %+v", logs)
	}
	verify(t, mock)
}
