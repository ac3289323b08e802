package usecase

import (
	"context"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BookingAssignmentUsecase interface {
	AssignDoctor(ctx context.Context, bookingID uuid.UUID, req *dto.AssignDoctorRequest) (*dto.BookingResponse, error)
}

type bookingAssignmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settings     ClinicSettings
	bookingRepo  repository.BookingRepository
	doctorRepo   repository.DoctorRepository
	serviceRepo  repository.ServiceRepository
	scheduleRepo repository.DoctorScheduleRepository
	auditService service.AuditService
	gridCache    service.ScheduleGridCache
}

func NewBookingAssignmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settings ClinicSettings,
	bookingRepo repository.BookingRepository,
	doctorRepo repository.DoctorRepository,
	serviceRepo repository.ServiceRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	auditService service.AuditService,
	gridCache service.ScheduleGridCache,
) BookingAssignmentUsecase {
	return &bookingAssignmentUsecase{
		db:           db,
		log:          log,
		settings:     settings,
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		auditService: auditService,
		gridCache:    gridCache,
	}
}

// AssignDoctor attaches a doctor to a booking and confirms it.
//
// Flow (single transaction):
// 1. Lock the booking row and check it is pending or confirmed
// 2. Lock the doctor row so assignments to the same doctor run one at a time
// 3. Re-run the availability rules for that doctor at the booking's own time,
// ignoring the booking itself
// 4. Write doctor, status and assigner, then the audit row
// 5. Commit and drop cached grids
func (u *bookingAssignmentUsecase) AssignDoctor(ctx context.Context, bookingID uuid.UUID, req *dto.AssignDoctorRequest) (*dto.BookingResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, invalidInput("doctor_id must be a UUID")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	booking, err := u.bookingRepo.FindByIDForUpdate(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to lock booking %s: %+v", bookingID, err)
		return nil, dependencyUnavailable(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !booking.IsAssignable() || booking.ServiceID == nil {
		return nil, ErrBookingNotAssignable
	}

	doctor, err := u.doctorRepo.FindByIDForUpdate(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	svc := booking.Service
	if svc == nil {
		svc, err = u.serviceRepo.FindByID(tx, *booking.ServiceID)
		if err != nil {
			u.log.Warnf("Failed to find service %s: %+v", *booking.ServiceID, err)
			return nil, dependencyUnavailable(err)
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
	}

	capable, err := u.doctorRepo.HasService(tx, doctor.ID, svc.ID)
	if err != nil {
		u.log.Warnf("Failed to check capability of doctor %s: %+v", doctor.ID, err)
		return nil, dependencyUnavailable(err)
	}
	if !capable {
		return nil, ErrDoctorUnavailable
	}

	window := u.settings.window(booking.BookingTime, svc)
	shifts, err := u.scheduleRepo.Find(tx, &entity.ScheduleFilter{
		DoctorID:      &doctor.ID,
		StartDate:     window.Date,
		EndDate:       window.Date,
		AvailableOnly: true,
	})
	if err != nil {
		u.log.Warnf("Failed to find shifts of doctor %s: %+v", doctor.ID, err)
		return nil, dependencyUnavailable(err)
	}

	scanFrom, scanTo, err := u.settings.bookingScanRange(booking.BookingTime)
	if err != nil {
		return nil, ErrInvalidBookingTime
	}
	existing, err := u.bookingRepo.FindOccupyingBetween(tx, &doctor.ID, scanFrom, scanTo)
	if err != nil {
		u.log.Warnf("Failed to find bookings of doctor %s: %+v", doctor.ID, err)
		return nil, dependencyUnavailable(err)
	}

	index := newAvailabilityIndex(shifts, existing, u.settings.DefaultDuration)
	if !index.canTake(doctor, window, booking.ID) {
		return nil, ErrDoctorUnavailable
	}

	oldValue := map[string]interface{}{
		"doctor_id": booking.DoctorID,
		"status":    booking.Status,
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	assignedBy := actorRef(actorID)
	booking.AssignTo(doctor.ID, assignedBy)

	affected, err := u.bookingRepo.AssignDoctor(tx, booking)
	if err != nil {
		u.log.Warnf("Failed to assign booking %s: %+v", booking.ID, err)
		return nil, dependencyUnavailable(err)
	}
	if affected == 0 {
		return nil, ErrBookingNotAssignable
	}

	newValue := map[string]interface{}{
		"doctor_id": booking.DoctorID,
		"status":    booking.Status,
	}
	if err := u.auditService.LogUpdate(ctx, tx, assignedBy, entity.AuditActionBookingAssign, "booking", booking.ID.String(), oldValue, newValue); err != nil {
		return nil, dependencyUnavailable(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, dependencyUnavailable(err)
	}

	u.gridCache.Invalidate(ctx)
	u.log.Infof("Booking assigned: id=%s, doctor=%s, time=%s", booking.ID, doctor.ID, booking.BookingTime.Format("2006-01-02T15:04:05Z07:00"))

	return converter.BookingToResponse(booking), nil
}
