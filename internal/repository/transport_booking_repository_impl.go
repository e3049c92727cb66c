package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transportBookingRepository struct{}

func NewTransportBookingRepository() domainRepo.TransportBookingRepository {
	return &transportBookingRepository{}
}

func (r *transportBookingRepository) Create(db *gorm.DB, booking *entity.TransportBooking) error {
	return db.Omit(clause.Associations).Create(booking).Error
}

func (r *transportBookingRepository) FindByID(db *gorm.DB, id int64) (*entity.TransportBooking, error) {
	var booking entity.TransportBooking
	err := db.Preload("Patient").Preload("Provider").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *transportBookingRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.TransportBooking, error) {
	var bookings []entity.TransportBooking
	err := db.Preload("Provider").
		Where("patient_id = ?", patientID).
		Order("booking_time DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *transportBookingRepository) FindByProviderID(db *gorm.DB, providerID int64) ([]entity.TransportBooking, error) {
	var bookings []entity.TransportBooking
	err := db.Preload("Patient").
		Where("provider_id = ?", providerID).
		Order("booking_time DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *transportBookingRepository) FindByStatus(db *gorm.DB, status entity.BookingStatus) ([]entity.TransportBooking, error) {
	var bookings []entity.TransportBooking
	err := db.Preload("Patient").Preload("Provider").
		Where("status = ?", status).
		Order("booking_time ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *transportBookingRepository) UpdateStatus(db *gorm.DB, id int64, from entity.BookingStatus, fields map[string]interface{}) (int64, error) {
	result := db.Model(&entity.TransportBooking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *transportBookingRepository) UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) (int64, error) {
	result := db.Model(&entity.TransportBooking{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}
