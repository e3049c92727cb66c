package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID int64) (*entity.DoctorProfile, error)
	// LockByUserID reads the profile row FOR UPDATE; call it inside a transaction.
	LockByUserID(db *gorm.DB, userID int64) (*entity.DoctorProfile, error)
	FindAvailable(db *gorm.DB) ([]entity.DoctorProfile, error)
	FindPendingVerification(db *gorm.DB) ([]entity.DoctorProfile, error)
	UpdateAvailability(db *gorm.DB, userID int64, isAvailable bool) (int64, error)
	UpdateRatingAggregate(db *gorm.DB, userID int64, rating decimal.Decimal, total int) error
}
