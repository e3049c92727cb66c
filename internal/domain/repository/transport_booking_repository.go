package repository

import (
	"telehealth-api/internal/domain/entity"

	"gorm.io/gorm"
)

type TransportBookingRepository interface {
	Create(db *gorm.DB, booking *entity.TransportBooking) error
	FindByID(db *gorm.DB, id int64) (*entity.TransportBooking, error)
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.TransportBooking, error)
	FindByProviderID(db *gorm.DB, providerID int64) ([]entity.TransportBooking, error)
	FindByStatus(db *gorm.DB, status entity.BookingStatus) ([]entity.TransportBooking, error)
	// UpdateStatus applies fields only while the row is still in status from.
	UpdateStatus(db *gorm.DB, id int64, from entity.BookingStatus, fields map[string]interface{}) (int64, error)
	UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) (int64, error)
}
