package usecase

import (
	"context"
	"errors"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"
	"telehealth-api/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAlreadyRated             = errors.New("consultation has already been rated")
	ErrRatingMismatch           = errors.New("consultation does not belong to this patient and doctor")
	ErrConsultationNotCompleted = errors.New("only completed consultations can be rated")
	ErrInvalidRatingScore       = errors.New("rating must be between 1 and 5")
)

const ratingEntity = "rating"

type RatingUsecase interface {
	SubmitRating(ctx context.Context, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
}

type ratingUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	doctorRepo       repository.DoctorProfileRepository
	consultationRepo repository.ConsultationRepository
	ratingRepo       repository.RatingRepository
	availability     *service.AvailabilityCache
	auditService     service.AuditService
	metrics          *metrics.Metrics
}

func NewRatingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	consultationRepo repository.ConsultationRepository,
	ratingRepo repository.RatingRepository,
	availability *service.AvailabilityCache,
	auditService service.AuditService,
	m *metrics.Metrics,
) RatingUsecase {
	return &ratingUsecase{
		db:               db,
		log:              log,
		doctorRepo:       doctorRepo,
		consultationRepo: consultationRepo,
		ratingRepo:       ratingRepo,
		availability:     availability,
		auditService:     auditService,
		metrics:          m,
	}
}

// SubmitRating records a score for a completed consultation and recomputes the doctor's aggregate.
//
// The doctor profile row is locked first, so concurrent ratings for the same doctor serialise and
// each recompute sees every committed rating. The aggregate is the rounded mean over all rows,
// never an incremental update.
func (u *ratingUsecase) SubmitRating(ctx context.Context, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if req.Rating < entity.MinRatingScore || req.Rating > entity.MaxRatingScore {
		return nil, ErrInvalidRatingScore
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorRepo.LockByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor profile %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	consultation, err := u.consultationRepo.FindByID(tx, req.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", req.ConsultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.PatientID != req.PatientID || consultation.DoctorID != req.DoctorID {
		u.metrics.Rejection(ratingEntity, "mismatch")
		return nil, ErrRatingMismatch
	}
	if consultation.Status != entity.ConsultationCompleted {
		u.metrics.Rejection(ratingEntity, "not_completed")
		return nil, ErrConsultationNotCompleted
	}

	existing, err := u.ratingRepo.FindByConsultationID(tx, req.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to check existing rating: %+v", err)
		return nil, err
	}
	if existing != nil {
		u.metrics.Rejection(ratingEntity, "already_rated")
		return nil, ErrAlreadyRated
	}

	rating := &entity.Rating{
		ConsultationID: req.ConsultationID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		Rating:         req.Rating,
		Review:         req.Review,
	}
	if err := u.ratingRepo.Create(tx, rating); err != nil {
		u.log.Warnf("Failed to create rating: %+v", err)
		if isDuplicateKeyError(err, "consultation_id") {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}

	aggregate, err := u.ratingRepo.AggregateForDoctor(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to aggregate ratings for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	profile.Rating = aggregate.Average.Round(2)
	profile.TotalRatings = aggregate.Count

	if err := u.doctorRepo.UpdateRatingAggregate(tx, req.DoctorID, profile.Rating, profile.TotalRatings); err != nil {
		u.log.Warnf("Failed to update rating aggregate for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, int64Ptr(req.PatientID), entity.AuditActionRatingCreate, ratingEntity, rating.ID, converter.RatingToResponse(rating, profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availability.InvalidateDoctors(ctx)
	u.log.Infof("Rating recorded: consultation=%d, doctor=%d, rating=%s over %d", req.ConsultationID, req.DoctorID, profile.Rating, profile.TotalRatings)
	return converter.RatingToResponse(rating, profile), nil
}
