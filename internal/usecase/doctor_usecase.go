package usecase

import (
	"context"
	"strings"

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

type DoctorUsecase interface {
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	gridCache    service.ScheduleGridCache
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	gridCache service.ScheduleGridCache,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		gridCache:    gridCache,
	}
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, dependencyUnavailable(err)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// UpdateDoctor patches the directory entry and, when service_ids is sent, replaces
// the doctor's capability links in the same transaction.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.Specialty != nil && strings.TrimSpace(*req.Specialty) == "" {
		return nil, invalidInput("specialty cannot be blank")
	}
	if req.PricePerSlot != nil && req.PricePerSlot.IsNegative() {
		return nil, invalidInput("price_per_slot cannot be negative")
	}

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

	oldValue := doctorAuditValue(doctor, nil)

	if req.Specialty != nil {
		doctor.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.Degree != nil {
		doctor.Degree = *req.Degree
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.PricePerSlot != nil {
		doctor.PricePerSlot = *req.PricePerSlot
	}
	if req.IsAvailable != nil {
		available := *req.IsAvailable
		doctor.IsAvailable = &available
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, dependencyUnavailable(err)
	}

	var serviceIDs []uuid.UUID
	if req.ServiceIDs != nil {
		serviceIDs = *req.ServiceIDs
		if err := u.doctorRepo.ReplaceServices(tx, doctorID, serviceIDs); err != nil {
			if isForeignKeyError(err, "service") {
				return nil, ErrServiceNotFound
			}
			u.log.Warnf("Failed to replace services of doctor %s: %+v", doctorID, err)
			return nil, dependencyUnavailable(err)
		}
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	newValue := doctorAuditValue(doctor, req.ServiceIDs)
	if err := u.auditService.LogUpdate(ctx, tx, actorRef(userID), entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), oldValue, newValue); err != nil {
		return nil, dependencyUnavailable(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, dependencyUnavailable(err)
	}

	u.gridCache.Invalidate(ctx)
	u.log.Infof("Doctor updated: id=%s, services_replaced=%t", doctorID, req.ServiceIDs != nil)

	// Reload with capability links for response
	fullDoctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil || fullDoctor == nil {
		u.log.Warnf("Failed to reload doctor %s: %+v", doctorID, err)
		return converter.DoctorToResponse(doctor), nil
	}

	return converter.DoctorToResponse(fullDoctor), nil
}

func doctorAuditValue(doctor *entity.Doctor, serviceIDs *[]uuid.UUID) map[string]interface{} {
	value := map[string]interface{}{
		"specialty":      doctor.Specialty,
		"degree":         doctor.Degree,
		"price_per_slot": doctor.PricePerSlot.String(),
		"is_available":   doctor.Listed(),
	}
	if serviceIDs != nil {
		value["service_ids"] = *serviceIDs
	}
	return value
}
