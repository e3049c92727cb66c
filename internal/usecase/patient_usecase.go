package usecase

import (
	"context"
	"time"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	GetPatientProfile(ctx context.Context, userID int64) (*dto.PatientProfileResponse, error)
	UpdatePatientProfile(ctx context.Context, userID int64, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) GetPatientProfile(ctx context.Context, userID int64) (*dto.PatientProfileResponse, error) {
	profile, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

// UpdatePatientProfile applies the non-nil fields of req.
func (u *patientUsecase) UpdatePatientProfile(ctx context.Context, userID int64, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientProfileToResponse(profile)

	if req.DateOfBirth != nil {
		// Format is enforced by the request validator.
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		profile.DateOfBirth = &dob
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = *req.EmergencyContact
	}
	if req.MedicalHistory != nil {
		profile.MedicalHistory = entity.JSON(req.MedicalHistory)
	}

	if err := u.patientRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile %d: %+v", userID, err)
		return nil, err
	}

	newValue := converter.PatientProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, int64Ptr(userID), entity.AuditActionProfileUpdate, "patient_profile", userID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}
