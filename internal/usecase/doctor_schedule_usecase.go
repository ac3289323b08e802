package usecase

import (
	"context"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/pkg/clinictime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxScheduleRangeDays = 366

type DoctorScheduleUsecase interface {
	ReplaceSchedules(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceScheduleRequest) (*dto.ReplaceScheduleResponse, error)
	GetSchedules(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*dto.ScheduleListResponse, error)
}

type doctorScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.DoctorScheduleRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	gridCache    service.ScheduleGridCache
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	gridCache service.ScheduleGridCache,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		gridCache:    gridCache,
	}
}

// ReplaceSchedules deletes every shift of the doctor between start_date and end_date
// and inserts the expanded template in the same transaction.
func (u *doctorScheduleUsecase) ReplaceSchedules(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceScheduleRequest) (*dto.ReplaceScheduleResponse, error) {
	start, end, err := parseScheduleRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	schedules, err := expandScheduleTemplate(doctorID, start, end, req)
	if err != nil {
		return nil, err
	}

	startDate := start.Format(clinictime.DateLayout)
	endDate := end.Format(clinictime.DateLayout)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByIDForUpdate(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	removed, err := u.scheduleRepo.DeleteByDoctorAndDateRange(tx, doctorID, startDate, endDate)
	if err != nil {
		u.log.Warnf("Failed to delete schedules of doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}

	if err := u.scheduleRepo.CreateBatch(tx, schedules); err != nil {
		u.log.Warnf("Failed to create schedules of doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	oldValue := map[string]interface{}{"removed": removed}
	newValue := map[string]interface{}{
		"start_date": startDate,
		"end_date":   endDate,
		"created":    len(schedules),
	}
	if err := u.auditService.LogUpdate(ctx, tx, actorRef(userID), entity.AuditActionScheduleReplace, "doctor_schedule", doctorID.String(), oldValue, newValue); err != nil {
		return nil, dependencyUnavailable(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, dependencyUnavailable(err)
	}

	u.gridCache.Invalidate(ctx)
	u.log.Infof("Schedules replaced: doctor=%s, range=%s..%s, removed=%d, created=%d", doctorID, startDate, endDate, removed, len(schedules))

	responses := converter.SchedulesToResponses(schedules)
	return &dto.ReplaceScheduleResponse{
		DoctorID:  doctorID,
		StartDate: startDate,
		EndDate:   endDate,
		Removed:   removed,
		Schedules: responses,
		Total:     len(responses),
	}, nil
}

func (u *doctorScheduleUsecase) GetSchedules(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*dto.ScheduleListResponse, error) {
	filter := &entity.ScheduleFilter{DoctorID: &doctorID}
	if startDate != "" || endDate != "" {
		start, end, err := parseScheduleRange(startDate, endDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = start.Format(clinictime.DateLayout)
		filter.EndDate = end.Format(clinictime.DateLayout)
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	schedules, err := u.scheduleRepo.Find(db, filter)
	if err != nil {
		u.log.Warnf("Failed to find schedules of doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func parseScheduleRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, invalidInput("start and end dates are required")
	}
	start, err := clinictime.ParseCivilDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	end, err := clinictime.ParseCivilDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > maxScheduleRangeDays {
		return time.Time{}, time.Time{}, invalidInput("date range spans %d days, at most %d allowed", days, maxScheduleRangeDays)
	}
	return start, end, nil
}

// expandScheduleTemplate turns the weekly template into one shift per matching civil
// date in [start, end] and appends the explicit day entries.
func expandScheduleTemplate(doctorID uuid.UUID, start, end time.Time, req *dto.ReplaceScheduleRequest) ([]entity.DoctorSchedule, error) {
	weekly := make(map[time.Weekday][]dto.ShiftTemplate)
	for _, w := range req.Weekly {
		if w.Weekday == nil || *w.Weekday < 0 || *w.Weekday > 6 {
			return nil, invalidInput("weekday must be between 0 (Sunday) and 6 (Saturday)")
		}
		day := time.Weekday(*w.Weekday)
		weekly[day] = append(weekly[day], w.Shifts...)
	}

	var schedules []entity.DoctorSchedule
	if len(weekly) > 0 {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			for _, t := range weekly[d.Weekday()] {
				shift, err := newShift(doctorID, d, t)
				if err != nil {
					return nil, err
				}
				schedules = append(schedules, shift)
			}
		}
	}

	for _, day := range req.Days {
		date, err := clinictime.ParseCivilDate(day.Date)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		if date.Before(start) || date.After(end) {
			return nil, invalidInput("date %s is outside %s..%s", day.Date, start.Format(clinictime.DateLayout), end.Format(clinictime.DateLayout))
		}
		for _, t := range day.Shifts {
			shift, err := newShift(doctorID, date, t)
			if err != nil {
				return nil, err
			}
			schedules = append(schedules, shift)
		}
	}

	return schedules, nil
}

func newShift(doctorID uuid.UUID, date time.Time, t dto.ShiftTemplate) (entity.DoctorSchedule, error) {
	startAt, err := clinictime.ParseTimeOfDay(t.StartTime)
	if err != nil {
		return entity.DoctorSchedule{}, ErrInvalidTimeFormat
	}
	endAt, err := clinictime.ParseTimeOfDay(t.EndTime)
	if err != nil {
		return entity.DoctorSchedule{}, ErrInvalidTimeFormat
	}
	if endAt <= startAt {
		return entity.DoctorSchedule{}, invalidInput("end_time %s must be after start_time %s", t.EndTime, t.StartTime)
	}

	maxPatients := entity.DefaultShiftCapacity
	if t.MaxPatients != nil {
		if *t.MaxPatients < 0 {
			return entity.DoctorSchedule{}, invalidInput("max_patients cannot be negative")
		}
		maxPatients = *t.MaxPatients
	}
	open := true

	return entity.DoctorSchedule{
		ID:          uuid.New(),
		DoctorID:    doctorID,
		Date:        date,
		StartTime:   startAt.String(),
		EndTime:     endAt.String(),
		ShiftName:   t.ShiftName,
		MaxPatients: &maxPatients,
		IsAvailable: &open,
	}, nil
}

// actorRef returns nil for an anonymous caller so the audit row stores NULL.
func actorRef(userID uuid.UUID) *uuid.UUID {
	if userID == uuid.Nil {
		return nil
	}
	return &userID
}
