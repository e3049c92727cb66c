package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RatingAggregate is the mean score and row count for one doctor.
type RatingAggregate struct {
	Average decimal.Decimal
	Count   int
}

type RatingRepository interface {
	Create(db *gorm.DB, rating *entity.Rating) error
	FindByConsultationID(db *gorm.DB, consultationID int64) (*entity.Rating, error)
	FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Rating, error)
	AggregateForDoctor(db *gorm.DB, doctorID int64) (*RatingAggregate, error)
}
