package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/pkg/clinictime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const unknownDoctorName = "Unknown Doctor"

type ScheduleGridUsecase interface {
	GetGrid(ctx context.Context, startDate, endDate string) (*dto.ScheduleGridResponse, error)
}

type scheduleGridUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settings     ClinicSettings
	doctorRepo   repository.DoctorRepository
	scheduleRepo repository.DoctorScheduleRepository
	bookingRepo  repository.BookingRepository
	gridCache    service.ScheduleGridCache
}

func NewScheduleGridUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settings ClinicSettings,
	doctorRepo repository.DoctorRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	bookingRepo repository.BookingRepository,
	gridCache service.ScheduleGridCache,
) ScheduleGridUsecase {
	return &scheduleGridUsecase{
		db:           db,
		log:          log,
		settings:     settings,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		gridCache:    gridCache,
	}
}

// GetGrid summarizes, per listed doctor and open shift in [startDate, endDate], how
// many occupying bookings start inside the shift and how full it is.
func (u *scheduleGridUsecase) GetGrid(ctx context.Context, startDate, endDate string) (*dto.ScheduleGridResponse, error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return nil, invalidInput("start and end are required")
	}
	if err := u.validateRange(startDate, endDate); err != nil {
		return nil, err
	}

	cached, generation, hit := u.gridCache.Get(ctx, startDate, endDate)
	if hit {
		return cached, nil
	}

	rangeStart, _, err := u.settings.Zone.DayBounds(startDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	_, rangeEnd, err := u.settings.Zone.DayBounds(endDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	var (
		doctors  []entity.Doctor
		shifts   []entity.DoctorSchedule
		bookings []entity.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	db := u.db.WithContext(gctx)

	g.Go(func() error {
		var err error
		doctors, err = u.doctorRepo.FindListed(db)
		return err
	})
	g.Go(func() error {
		var err error
		shifts, err = u.scheduleRepo.Find(db, &entity.ScheduleFilter{
			StartDate:     startDate,
			EndDate:       endDate,
			AvailableOnly: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = u.bookingRepo.FindOccupyingBetween(db, nil, rangeStart, rangeEnd)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		u.log.Warnf("Failed to load schedule grid %s..%s: %+v", startDate, endDate, err)
		return nil, dependencyUnavailable(err)
	}

	grid := buildScheduleGrid(u.settings.Zone, doctors, shifts, bookings)
	grid.StartDate = startDate
	grid.EndDate = endDate

	u.gridCache.Set(ctx, generation, startDate, endDate, grid)

	return grid, nil
}

func (u *scheduleGridUsecase) validateRange(startDate, endDate string) error {
	start, err := clinictime.ParseCivilDate(startDate)
	if err != nil {
		return ErrInvalidDateRange
	}
	end, err := clinictime.ParseCivilDate(endDate)
	if err != nil {
		return ErrInvalidDateRange
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if u.settings.GridMaxDays > 0 && days > u.settings.GridMaxDays {
		return invalidInput("date range spans %d days, at most %d allowed", days, u.settings.GridMaxDays)
	}
	return nil
}

// bookingStamp is a booking reduced to its clinic calendar position.
type bookingStamp struct {
	date string
	at   clinictime.TimeOfDay
}

func buildScheduleGrid(zone *clinictime.Zone, doctors []entity.Doctor, shifts []entity.DoctorSchedule, bookings []entity.Booking) *dto.ScheduleGridResponse {
	shiftsByDoctor := make(map[uuid.UUID][]entity.DoctorSchedule)
	for _, s := range shifts {
		if !s.Open() {
			continue
		}
		shiftsByDoctor[s.DoctorID] = append(shiftsByDoctor[s.DoctorID], s)
	}

	stampsByDoctor := make(map[uuid.UUID][]bookingStamp)
	for _, b := range bookings {
		if !b.Occupies() {
			continue
		}
		stampsByDoctor[*b.DoctorID] = append(stampsByDoctor[*b.DoctorID], bookingStamp{
			date: zone.CivilDate(b.BookingTime),
			at:   zone.TimeOfDay(b.BookingTime),
		})
	}

	schedules := make([]dto.DoctorGridResponse, 0, len(doctors))
	for i := range doctors {
		doctor := &doctors[i]
		if !doctor.Listed() {
			continue
		}

		name := doctor.Name()
		if name == "" {
			name = unknownDoctorName
		}

		doctorShifts := shiftsByDoctor[doctor.ID]
		cells := make([]dto.ShiftOccupancyResponse, 0, len(doctorShifts))
		for j := range doctorShifts {
			shift := &doctorShifts[j]
			booked := 0
			date := shift.DateString()
			for _, stamp := range stampsByDoctor[doctor.ID] {
				if stamp.date == date && shift.Contains(stamp.at) {
					booked++
				}
			}

			capacity := shift.Capacity()
			cells = append(cells, dto.ShiftOccupancyResponse{
				Date:        date,
				StartTime:   converter.FormatTimeOfDay(shift.StartTime),
				EndTime:     converter.FormatTimeOfDay(shift.EndTime),
				MaxPatients: capacity,
				BookedCount: booked,
				Status:      string(entity.ClassifyOccupancy(booked, capacity)),
			})
		}

		schedules = append(schedules, dto.DoctorGridResponse{
			DoctorID:   doctor.ID,
			DoctorName: name,
			Shifts:     cells,
		})
	}

	return &dto.ScheduleGridResponse{Schedules: schedules}
}
