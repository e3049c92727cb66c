package service

import (
	"context"
	"strconv"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditSavePoint = "audit_log"

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error
	// LogTransition records a lifecycle status change.
	LogTransition(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, from, to string) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) LogTransition(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, from, to string) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"from":      from,
		"to":        to,
	})
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, userID *int64, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	db := tx.WithContext(ctx)
	if !inTransaction(db) {
		if err := s.auditRepo.Create(db, auditLog); err != nil {
			s.log.Warnf("Failed to create audit log: %+v", err)
			return err
		}
		return nil
	}

	// Run under a savepoint: on PostgreSQL a failed insert would otherwise abort the caller's tx.
	if err := db.SavePoint(auditSavePoint).Error; err != nil {
		s.log.Warnf("Failed to create audit savepoint: %+v", err)
		return err
	}
	if err := s.auditRepo.Create(db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		if rbErr := db.RollbackTo(auditSavePoint).Error; rbErr != nil {
			s.log.Warnf("Failed to roll back audit savepoint: %+v", rbErr)
		}
		return err
	}

	return nil
}

func inTransaction(db *gorm.DB) bool {
	committer, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok && committer != nil
}
