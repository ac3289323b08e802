package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	ResolveDoctors(ctx context.Context, req *dto.ResolveAvailabilityRequest) ([]dto.AvailableDoctorResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settings     ClinicSettings
	serviceRepo  repository.ServiceRepository
	doctorRepo   repository.DoctorRepository
	scheduleRepo repository.DoctorScheduleRepository
	bookingRepo  repository.BookingRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settings ClinicSettings,
	serviceRepo repository.ServiceRepository,
	doctorRepo repository.DoctorRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	bookingRepo repository.BookingRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		settings:     settings,
		serviceRepo:  serviceRepo,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
	}
}

// ResolveDoctors returns the doctors that can legally take a new booking for the
// service at the requested time, in candidate fetch order.
//
// Flow:
// 1. Parse service id and instant
// 2. Fetch service, capable doctors, that day's open shifts and occupying bookings in parallel
// 3. Keep candidates that are eligible, have one shift covering the whole visit and
// no overlapping booking
//
// Any failed read fails the whole call; no partial list is returned.
func (u *availabilityUsecase) ResolveDoctors(ctx context.Context, req *dto.ResolveAvailabilityRequest) ([]dto.AvailableDoctorResponse, error) {
	if req.ServiceID == "" || req.BookingTime == "" {
		return nil, invalidInput("service_id and booking_time are required")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, invalidInput("service_id must be a UUID")
	}
	start, err := u.settings.Zone.ParseInstant(req.BookingTime)
	if err != nil {
		return nil, ErrInvalidBookingTime
	}

	localDate := u.settings.Zone.CivilDate(start)
	scanFrom, scanTo, err := u.settings.bookingScanRange(start)
	if err != nil {
		return nil, ErrInvalidBookingTime
	}

	var (
		service    *entity.Service
		candidates []entity.Doctor
		shifts     []entity.DoctorSchedule
		bookings   []entity.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	db := u.db.WithContext(gctx)

	g.Go(func() error {
		var err error
		service, err = u.serviceRepo.FindByID(db, serviceID)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = u.doctorRepo.FindByService(db, serviceID)
		return err
	})
	g.Go(func() error {
		var err error
		shifts, err = u.scheduleRepo.Find(db, &entity.ScheduleFilter{
			StartDate:     localDate,
			EndDate:       localDate,
			AvailableOnly: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = u.bookingRepo.FindOccupyingBetween(db, nil, scanFrom, scanTo)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		u.log.Warnf("Failed to load availability data for service %s at %s: %+v", serviceID, req.BookingTime, err)
		return nil, dependencyUnavailable(err)
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	window := u.settings.window(start, service)
	index := newAvailabilityIndex(shifts, bookings, u.settings.DefaultDuration)

	available := make([]dto.AvailableDoctorResponse, 0, len(candidates))
	for i := range candidates {
		if index.canTake(&candidates[i], window, uuid.Nil) {
			available = append(available, converter.DoctorToAvailableResponse(&candidates[i]))
		}
	}

	u.log.Debugf("Resolved %d of %d doctors for service %s on %s %s-%s",
		len(available), len(candidates), serviceID, window.Date, window.StartOffset, window.EndOffset)

	return available, nil
}
