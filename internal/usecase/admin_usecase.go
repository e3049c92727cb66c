package usecase

import (
	"context"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultAuditLogLimit = 100

type AdminUsecase interface {
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
	PendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	VerifyDoctor(ctx context.Context, userID int64, req *dto.VerifyDoctorRequest) (*dto.DoctorResponse, error)
	PendingConsultations(ctx context.Context) (*dto.ConsultationListResponse, error)
	AuditLogs(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type adminUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	accountRepo      repository.AccountRepository
	doctorRepo       repository.DoctorProfileRepository
	consultationRepo repository.ConsultationRepository
	donationRepo     repository.DonationRepository
	auditRepo        repository.AuditLogRepository
	availability     *service.AvailabilityCache
	auditService     service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	doctorRepo repository.DoctorProfileRepository,
	consultationRepo repository.ConsultationRepository,
	donationRepo repository.DonationRepository,
	auditRepo repository.AuditLogRepository,
	availability *service.AvailabilityCache,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:               db,
		log:              log,
		accountRepo:      accountRepo,
		doctorRepo:       doctorRepo,
		consultationRepo: consultationRepo,
		donationRepo:     donationRepo,
		auditRepo:        auditRepo,
		availability:     availability,
		auditService:     auditService,
	}
}

// Stats runs the dashboard counts concurrently.
func (u *adminUsecase) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	var stats dto.AdminStatsResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := u.accountRepo.CountByRole(u.db.WithContext(gctx), entity.RolePatient, false)
		stats.ActivePatients = count
		return err
	})
	g.Go(func() error {
		count, err := u.accountRepo.CountByRole(u.db.WithContext(gctx), entity.RoleDoctor, true)
		stats.VerifiedDoctors = count
		return err
	})
	g.Go(func() error {
		count, err := u.consultationRepo.Count(u.db.WithContext(gctx))
		stats.TotalConsultations = count
		return err
	})
	g.Go(func() error {
		totals, err := u.donationRepo.Totals(u.db.WithContext(gctx))
		if err != nil {
			return err
		}
		stats.TotalDonations = totals.Total
		return nil
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to compute admin stats: %+v", err)
		return nil, err
	}
	return &stats, nil
}

func (u *adminUsecase) PendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorRepo.FindPendingVerification(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors pending verification: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

// VerifyDoctor sets the verification flag on a doctor's account. Verification gates matching,
// so the available-doctor cache is dropped afterwards.
func (u *adminUsecase) VerifyDoctor(ctx context.Context, userID int64, req *dto.VerifyDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %d: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if _, err := u.accountRepo.UpdateVerified(tx, userID, *req.IsVerified); err != nil {
		u.log.Warnf("Failed to update verification for doctor %d: %+v", userID, err)
		return nil, err
	}

	var wasVerified bool
	if profile.User != nil {
		wasVerified = profile.User.IsVerified
		profile.User.IsVerified = *req.IsVerified
	}
	oldValue := map[string]interface{}{"isVerified": wasVerified}
	newValue := map[string]interface{}{"isVerified": *req.IsVerified}
	if err := u.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionDoctorVerify, "account", userID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availability.InvalidateDoctors(ctx)
	u.log.Infof("Doctor verification changed: id=%d, verified=%t", userID, *req.IsVerified)
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *adminUsecase) PendingConsultations(ctx context.Context) (*dto.ConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindByStatus(u.db.WithContext(ctx), entity.ConsultationPending)
	if err != nil {
		u.log.Warnf("Failed to find pending consultations: %+v", err)
		return nil, err
	}
	return toConsultationList(consultations), nil
}

// AuditLogs returns the newest entries first; limit <= 0 uses the default page size.
func (u *adminUsecase) AuditLogs(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}

	logs, err := u.auditRepo.FindAll(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
