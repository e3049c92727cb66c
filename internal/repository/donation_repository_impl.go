package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type donationRepository struct{}

func NewDonationRepository() domainRepo.DonationRepository {
	return &donationRepository{}
}

func (r *donationRepository) Create(db *gorm.DB, donation *entity.Donation) error {
	return db.Create(donation).Error
}

func (r *donationRepository) FindAll(db *gorm.DB) ([]entity.Donation, error) {
	var donations []entity.Donation
	err := db.Order("created_at DESC, id DESC").Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) Totals(db *gorm.DB) (*domainRepo.DonationTotals, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := db.Model(&entity.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.DonationTotals{Total: row.Total, Count: row.Count}, nil
}

type donationRequestRepository struct{}

func NewDonationRequestRepository() domainRepo.DonationRequestRepository {
	return &donationRequestRepository{}
}

func (r *donationRequestRepository) Create(db *gorm.DB, request *entity.DonationRequest) error {
	return db.Omit(clause.Associations).Create(request).Error
}

func (r *donationRequestRepository) FindByID(db *gorm.DB, id int64) (*entity.DonationRequest, error) {
	var request entity.DonationRequest
	err := db.Preload("Patient").Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *donationRequestRepository) FindAll(db *gorm.DB) ([]entity.DonationRequest, error) {
	var requests []entity.DonationRequest
	err := db.Preload("Patient").Order("created_at DESC, id DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *donationRequestRepository) UpdateStatus(db *gorm.DB, id int64, from, to entity.DonationRequestStatus) (int64, error) {
	result := db.Model(&entity.DonationRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}
