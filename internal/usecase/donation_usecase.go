package usecase

import (
	"context"
	"errors"
	"fmt"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDonationRequestNotFound = errors.New("donation request not found")

const donationRequestEntity = "donation_request"

// DonationUsecase records pledges and patient assistance requests. No payment is captured.
type DonationUsecase interface {
	CreateDonation(ctx context.Context, req *dto.CreateDonationRequest) (*dto.DonationResponse, error)
	ListDonations(ctx context.Context) (*dto.DonationListResponse, error)
	DonationStats(ctx context.Context) (*dto.DonationStatsResponse, error)
	CreateDonationRequest(ctx context.Context, req *dto.CreateDonationRequestRequest) (*dto.DonationRequestResponse, error)
	ListDonationRequests(ctx context.Context) (*dto.DonationRequestListResponse, error)
	UpdateDonationRequestStatus(ctx context.Context, id int64, req *dto.UpdateDonationRequestStatusRequest) (*dto.DonationRequestResponse, error)
}

type donationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	donationRepo repository.DonationRepository
	requestRepo  repository.DonationRequestRepository
	auditService service.AuditService
}

func NewDonationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	donationRepo repository.DonationRepository,
	requestRepo repository.DonationRequestRepository,
	auditService service.AuditService,
) DonationUsecase {
	return &donationUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
		auditService: auditService,
	}
}

func (u *donationUsecase) CreateDonation(ctx context.Context, req *dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	donation := &entity.Donation{
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		Amount:      req.Amount.Round(2),
		Purpose:     req.Purpose,
		IsAnonymous: req.IsAnonymous,
	}
	if err := u.donationRepo.Create(tx, donation); err != nil {
		u.log.Warnf("Failed to create donation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionDonationCreate, "donation", donation.ID, converter.DonationToResponse(donation)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DonationToResponse(donation), nil
}

func (u *donationUsecase) ListDonations(ctx context.Context) (*dto.DonationListResponse, error) {
	donations, err := u.donationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list donations: %+v", err)
		return nil, err
	}

	return &dto.DonationListResponse{
		Donations: converter.DonationsToResponses(donations),
		Total:     len(donations),
	}, nil
}

func (u *donationUsecase) DonationStats(ctx context.Context) (*dto.DonationStatsResponse, error) {
	totals, err := u.donationRepo.Totals(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to total donations: %+v", err)
		return nil, err
	}

	return &dto.DonationStatsResponse{
		Total: totals.Total,
		Count: totals.Count,
	}, nil
}

func (u *donationUsecase) CreateDonationRequest(ctx context.Context, req *dto.CreateDonationRequestRequest) (*dto.DonationRequestResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.accountRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() {
		return nil, ErrPatientNotFound
	}

	request := &entity.DonationRequest{
		PatientID:       req.PatientID,
		Amount:          req.Amount.Round(2),
		Purpose:         req.Purpose,
		MedicalDocument: req.MedicalDocument,
		Status:          entity.DonationRequestPending,
	}
	if err := u.requestRepo.Create(tx, request); err != nil {
		u.log.Warnf("Failed to create donation request: %+v", err)
		if isForeignKeyError(err, "patient_id") {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	request.Patient = patient

	if err := u.auditService.LogCreate(ctx, tx, int64Ptr(req.PatientID), entity.AuditActionDonationRequestCreate, donationRequestEntity, request.ID, converter.DonationRequestToResponse(request)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DonationRequestToResponse(request), nil
}

func (u *donationUsecase) ListDonationRequests(ctx context.Context) (*dto.DonationRequestListResponse, error) {
	requests, err := u.requestRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list donation requests: %+v", err)
		return nil, err
	}

	return &dto.DonationRequestListResponse{
		Requests: converter.DonationRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

func (u *donationUsecase) UpdateDonationRequestStatus(ctx context.Context, id int64, req *dto.UpdateDonationRequestStatusRequest) (*dto.DonationRequestResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.requestRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find donation request %d: %+v", id, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrDonationRequestNotFound
	}

	from := request.Status
	next := entity.DonationRequestStatus(req.Status)
	if !from.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, next)
	}

	rows, err := u.requestRepo.UpdateStatus(tx, id, from, next)
	if err != nil {
		u.log.Warnf("Failed to update donation request %d status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: donation request %d is no longer %s", ErrIllegalTransition, id, from)
	}

	if err := u.auditService.LogTransition(ctx, tx, nil, entity.AuditActionDonationRequestStatus, donationRequestEntity, id, string(from), string(next)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Donation request %d moved from %s to %s", id, from, next)
	request.Status = next
	return converter.DonationRequestToResponse(request), nil
}
