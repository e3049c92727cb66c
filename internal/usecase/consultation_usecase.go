package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrDoctorUnavailable    = errors.New("doctor is not available")
)

const consultationEntity = "consultation"

type ConsultationUsecase interface {
	CreateConsultation(ctx context.Context, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	GetConsultation(ctx context.Context, id int64) (*dto.ConsultationResponse, error)
	ListByPatient(ctx context.Context, patientID int64) (*dto.ConsultationListResponse, error)
	ListByDoctor(ctx context.Context, doctorID int64) (*dto.ConsultationListResponse, error)
	ListPending(ctx context.Context) (*dto.ConsultationListResponse, error)
	AcceptConsultation(ctx context.Context, id int64) (*dto.ConsultationResponse, error)
	CompleteConsultation(ctx context.Context, id int64, req *dto.CompleteConsultationRequest) (*dto.ConsultationResponse, error)
	CancelConsultation(ctx context.Context, id int64, req *dto.CancelConsultationRequest) (*dto.ConsultationResponse, error)
	UpdateConsultation(ctx context.Context, id int64, req *dto.UpdateConsultationRequest) (*dto.ConsultationResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	accountRepo      repository.AccountRepository
	doctorRepo       repository.DoctorProfileRepository
	consultationRepo repository.ConsultationRepository
	auditService     service.AuditService
	metrics          *metrics.Metrics
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	doctorRepo repository.DoctorProfileRepository,
	consultationRepo repository.ConsultationRepository,
	auditService service.AuditService,
	m *metrics.Metrics,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		accountRepo:      accountRepo,
		doctorRepo:       doctorRepo,
		consultationRepo: consultationRepo,
		auditService:     auditService,
		metrics:          m,
	}
}

// CreateConsultation opens a pending consultation.
//
// The doctor profile row is locked for the length of the transaction, so availability
// and verification are re-checked against the committed state rather than a cached list.
func (u *consultationUsecase) CreateConsultation(ctx context.Context, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
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

	doctor, err := u.doctorRepo.LockByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor profile %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsMatchable() {
		u.metrics.Rejection(consultationEntity, "doctor_unavailable")
		return nil, ErrDoctorUnavailable
	}

	consultation := &entity.Consultation{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Status:      entity.ConsultationPending,
		Type:        entity.ConsultationType(req.Type),
		Symptoms:    req.Symptoms,
		ScheduledAt: req.ScheduledAt,
	}
	if err := u.consultationRepo.Create(tx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, int64Ptr(req.PatientID), entity.AuditActionConsultationCreate, consultationEntity, consultation.ID, converter.ConsultationToResponse(consultation)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Consultation created: id=%d, patient=%d, doctor=%d, type=%s", consultation.ID, req.PatientID, req.DoctorID, req.Type)
	return u.reload(ctx, consultation, nil)
}

func (u *consultationUsecase) GetConsultation(ctx context.Context, id int64) (*dto.ConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) ListByPatient(ctx context.Context, patientID int64) (*dto.ConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find consultations for patient %d: %+v", patientID, err)
		return nil, err
	}
	return toConsultationList(consultations), nil
}

func (u *consultationUsecase) ListByDoctor(ctx context.Context, doctorID int64) (*dto.ConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find consultations for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return toConsultationList(consultations), nil
}

func (u *consultationUsecase) ListPending(ctx context.Context) (*dto.ConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindByStatus(u.db.WithContext(ctx), entity.ConsultationPending)
	if err != nil {
		u.log.Warnf("Failed to find pending consultations: %+v", err)
		return nil, err
	}
	return toConsultationList(consultations), nil
}

func (u *consultationUsecase) AcceptConsultation(ctx context.Context, id int64) (*dto.ConsultationResponse, error) {
	return u.transition(ctx, id, entity.ConsultationActive, map[string]interface{}{
		"started_at": time.Now(),
	})
}

func (u *consultationUsecase) CompleteConsultation(ctx context.Context, id int64, req *dto.CompleteConsultationRequest) (*dto.ConsultationResponse, error) {
	return u.transition(ctx, id, entity.ConsultationCompleted, map[string]interface{}{
		"ended_at":     time.Now(),
		"diagnosis":    req.Diagnosis,
		"prescription": req.Prescription,
		"notes":        req.Notes,
	})
}

func (u *consultationUsecase) CancelConsultation(ctx context.Context, id int64, req *dto.CancelConsultationRequest) (*dto.ConsultationResponse, error) {
	fields := map[string]interface{}{
		"ended_at": time.Now(),
	}
	if req != nil && req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	return u.transition(ctx, id, entity.ConsultationCancelled, fields)
}

// UpdateConsultation applies a partial update. A status in the request goes through the
// transition table together with the text fields; without one only the text fields change.
func (u *consultationUsecase) UpdateConsultation(ctx context.Context, id int64, req *dto.UpdateConsultationRequest) (*dto.ConsultationResponse, error) {
	fields := map[string]interface{}{}
	if req.Diagnosis != nil {
		fields["diagnosis"] = *req.Diagnosis
	}
	if req.Prescription != nil {
		fields["prescription"] = *req.Prescription
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if req.Status != nil {
		next := entity.ConsultationStatus(*req.Status)
		now := time.Now()
		switch next {
		case entity.ConsultationActive:
			fields["started_at"] = now
		case entity.ConsultationCompleted, entity.ConsultationCancelled:
			fields["ended_at"] = now
		}
		return u.transition(ctx, id, next, fields)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.consultationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return nil, err
	}
	if current == nil {
		return nil, ErrConsultationNotFound
	}
	if len(fields) == 0 {
		return converter.ConsultationToResponse(current), nil
	}

	if _, err := u.consultationRepo.UpdateFields(tx, id, fields); err != nil {
		u.log.Warnf("Failed to update consultation %d: %+v", id, err)
		return nil, err
	}

	oldValue := map[string]interface{}{
		"diagnosis":    current.Diagnosis,
		"prescription": current.Prescription,
		"notes":        current.Notes,
	}
	if err := u.auditService.LogUpdate(ctx, tx, int64Ptr(current.DoctorID), entity.AuditActionConsultationUpdate, consultationEntity, id, oldValue, fields); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.reload(ctx, current, fields)
}

// transition moves consultation id to next. The update is conditional on the status read
// inside the transaction, so a concurrent writer that got there first yields ErrIllegalTransition.
func (u *consultationUsecase) transition(ctx context.Context, id int64, next entity.ConsultationStatus, fields map[string]interface{}) (*dto.ConsultationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.consultationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return nil, err
	}
	if current == nil {
		return nil, ErrConsultationNotFound
	}

	from := current.Status
	if !from.CanTransitionTo(next) {
		u.metrics.Rejection(consultationEntity, "illegal_transition")
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, next)
	}

	fields["status"] = next
	rows, err := u.consultationRepo.UpdateStatus(tx, id, from, fields)
	if err != nil {
		u.log.Warnf("Failed to update consultation %d status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		u.metrics.Rejection(consultationEntity, "concurrent_update")
		return nil, fmt.Errorf("%w: consultation %d is no longer %s", ErrIllegalTransition, id, from)
	}

	if err := u.auditService.LogTransition(ctx, tx, int64Ptr(current.DoctorID), entity.AuditActionConsultationStatus, consultationEntity, id, string(from), string(next)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.Transition(consultationEntity, string(from), string(next))
	u.log.Infof("Consultation %d moved from %s to %s", id, from, next)
	return u.reload(ctx, current, fields)
}

// reload re-reads the consultation with both parties joined. If the read fails the
// committed fields are applied to fallback so the caller still sees the new state.
func (u *consultationUsecase) reload(ctx context.Context, fallback *entity.Consultation, fields map[string]interface{}) (*dto.ConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), fallback.ID)
	if err != nil || consultation == nil {
		u.log.Warnf("Failed to reload consultation %d: %+v", fallback.ID, err)
		applyConsultationFields(fallback, fields)
		return converter.ConsultationToResponse(fallback), nil
	}
	return converter.ConsultationToResponse(consultation), nil
}

func applyConsultationFields(c *entity.Consultation, fields map[string]interface{}) {
	for column, value := range fields {
		switch column {
		case "status":
			c.Status = value.(entity.ConsultationStatus)
		case "diagnosis":
			c.Diagnosis = value.(string)
		case "prescription":
			c.Prescription = value.(string)
		case "notes":
			c.Notes = value.(string)
		case "started_at":
			at := value.(time.Time)
			c.StartedAt = &at
		case "ended_at":
			at := value.(time.Time)
			c.EndedAt = &at
		}
	}
}

func toConsultationList(consultations []entity.Consultation) *dto.ConsultationListResponse {
	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}
}
