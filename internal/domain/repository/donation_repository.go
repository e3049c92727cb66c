package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationTotals is the pledged sum and number of donations.
type DonationTotals struct {
	Total decimal.Decimal
	Count int64
}

type DonationRepository interface {
	Create(db *gorm.DB, donation *entity.Donation) error
	FindAll(db *gorm.DB) ([]entity.Donation, error)
	Totals(db *gorm.DB) (*DonationTotals, error)
}

type DonationRequestRepository interface {
	Create(db *gorm.DB, request *entity.DonationRequest) error
	FindByID(db *gorm.DB, id int64) (*entity.DonationRequest, error)
	FindAll(db *gorm.DB) ([]entity.DonationRequest, error)
	UpdateStatus(db *gorm.DB, id int64, from, to entity.DonationRequestStatus) (int64, error)
}
