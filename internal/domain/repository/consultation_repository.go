package repository

import (
	"telehealth-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindByID(db *gorm.DB, id int64) (*entity.Consultation, error)
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Consultation, error)
	FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Consultation, error)
	FindByStatus(db *gorm.DB, status entity.ConsultationStatus) ([]entity.Consultation, error)
	// UpdateStatus applies fields only while the row is still in status from.
	// Returns affected rows: 0 means the row is gone or another writer moved it first.
	UpdateStatus(db *gorm.DB, id int64, from entity.ConsultationStatus, fields map[string]interface{}) (int64, error)
	UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
