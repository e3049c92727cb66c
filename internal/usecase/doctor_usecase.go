package usecase

import (
	"context"
	"errors"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAccountNotDoctor    = errors.New("account is not a doctor")
	ErrDoctorProfileExists = errors.New("doctor profile already exists")
)

type DoctorUsecase interface {
	CreateDoctorProfile(ctx context.Context, req *dto.CreateDoctorProfileRequest) (*dto.DoctorResponse, error)
	GetDoctorProfile(ctx context.Context, userID int64) (*dto.DoctorResponse, error)
	ListAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	SetAvailability(ctx context.Context, userID int64, req *dto.UpdateAvailabilityRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	doctorRepo   repository.DoctorProfileRepository
	availability *service.AvailabilityCache
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	doctorRepo repository.DoctorProfileRepository,
	availability *service.AvailabilityCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		doctorRepo:   doctorRepo,
		availability: availability,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctorProfile(ctx context.Context, req *dto.CreateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account, err := u.accountRepo.FindByID(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find account %d: %+v", req.UserID, err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if !account.IsDoctor() {
		return nil, ErrAccountNotDoctor
	}

	existing, err := u.doctorRepo.FindByUserID(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %d: %+v", req.UserID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorProfileExists
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	profile := &entity.DoctorProfile{
		UserID:          req.UserID,
		LicenseNumber:   req.LicenseNumber,
		Specialization:  req.Specialization,
		Experience:      req.Experience,
		Location:        req.Location,
		IsAvailable:     isAvailable,
		ConsultationFee: req.ConsultationFee.Round(2),
		Rating:          decimal.Zero,
	}
	if err := u.doctorRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		if isDuplicateKeyError(err, "doctor_profiles_pkey") {
			return nil, ErrDoctorProfileExists
		}
		if isForeignKeyError(err, "user_id") {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	profile.User = account

	if err := u.auditService.LogCreate(ctx, tx, int64Ptr(account.ID), entity.AuditActionDoctorCreate, "doctor_profile", profile.UserID, converter.DoctorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availability.InvalidateDoctors(ctx)
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) GetDoctorProfile(ctx context.Context, userID int64) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// ListAvailableDoctors returns verified doctors toggled available, best rated first.
func (u *doctorUsecase) ListAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.availability.Doctors(ctx, func() ([]entity.DoctorProfile, error) {
		return u.doctorRepo.FindAvailable(u.db.WithContext(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to list available doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) SetAvailability(ctx context.Context, userID int64, req *dto.UpdateAvailabilityRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if _, err := u.doctorRepo.UpdateAvailability(tx, userID, *req.IsAvailable); err != nil {
		u.log.Warnf("Failed to update availability for doctor %d: %+v", userID, err)
		return nil, err
	}

	oldValue := map[string]interface{}{"isAvailable": profile.IsAvailable}
	newValue := map[string]interface{}{"isAvailable": *req.IsAvailable}
	if err := u.auditService.LogUpdate(ctx, tx, int64Ptr(userID), entity.AuditActionDoctorAvailability, "doctor_profile", userID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availability.InvalidateDoctors(ctx)
	u.log.Infof("Doctor availability changed: id=%d, available=%t", userID, *req.IsAvailable)

	profile.IsAvailable = *req.IsAvailable
	return converter.DoctorProfileToResponse(profile), nil
}
