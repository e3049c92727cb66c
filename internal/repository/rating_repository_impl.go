package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ratingRepository struct{}

func NewRatingRepository() domainRepo.RatingRepository {
	return &ratingRepository{}
}

func (r *ratingRepository) Create(db *gorm.DB, rating *entity.Rating) error {
	return db.Create(rating).Error
}

func (r *ratingRepository) FindByConsultationID(db *gorm.DB, consultationID int64) (*entity.Rating, error) {
	var rating entity.Rating
	err := db.Where("consultation_id = ?", consultationID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := db.Where("doctor_id = ?", doctorID).Order("created_at DESC, id DESC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// AggregateForDoctor computes the mean and count over every rating row for the doctor.
func (r *ratingRepository) AggregateForDoctor(db *gorm.DB, doctorID int64) (*domainRepo.RatingAggregate, error) {
	var row struct {
		Average decimal.Decimal
		Count   int
	}
	err := db.Model(&entity.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("doctor_id = ?", doctorID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.RatingAggregate{Average: row.Average, Count: row.Count}, nil
}
