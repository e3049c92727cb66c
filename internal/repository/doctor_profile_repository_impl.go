package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit(clause.Associations).Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID int64) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) LockByUserID(db *gorm.DB, userID int64) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// Loaded separately so the row lock does not extend to the account.
	var account entity.Account
	if err := db.Where("id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	profile.User = &account
	return &profile, nil
}

// FindAvailable returns doctors that are toggled available and whose account is verified,
// best rated first.
func (r *doctorProfileRepository) FindAvailable(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.
		Joins("JOIN accounts ON accounts.id = doctor_profiles.user_id").
		Where("doctor_profiles.is_available = ? AND accounts.is_verified = ?", true, true).
		Preload("User").
		Order("doctor_profiles.rating DESC, doctor_profiles.user_id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindPendingVerification(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.
		Joins("JOIN accounts ON accounts.id = doctor_profiles.user_id").
		Where("accounts.is_verified = ?", false).
		Preload("User").
		Order("accounts.created_at ASC, doctor_profiles.user_id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) UpdateAvailability(db *gorm.DB, userID int64, isAvailable bool) (int64, error) {
	result := db.Model(&entity.DoctorProfile{}).
		Where("user_id = ?", userID).
		Update("is_available", isAvailable)
	return result.RowsAffected, result.Error
}

func (r *doctorProfileRepository) UpdateRatingAggregate(db *gorm.DB, userID int64, rating decimal.Decimal, total int) error {
	return db.Model(&entity.DoctorProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_ratings": total,
		}).Error
}
