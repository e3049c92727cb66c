package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Omit(clause.Associations).Create(consultation).Error
}

func (r *consultationRepository) FindByID(db *gorm.DB, id int64) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC, id DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByStatus(db *gorm.DB, status entity.ConsultationStatus) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Preload("Patient").Preload("Doctor").
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) UpdateStatus(db *gorm.DB, id int64, from entity.ConsultationStatus, fields map[string]interface{}) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Consultation{}).Count(&count).Error
	return count, err
}
