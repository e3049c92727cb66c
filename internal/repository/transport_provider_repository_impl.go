package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transportProviderRepository struct{}

func NewTransportProviderRepository() domainRepo.TransportProviderRepository {
	return &transportProviderRepository{}
}

func (r *transportProviderRepository) Create(db *gorm.DB, provider *entity.TransportProvider) error {
	return db.Create(provider).Error
}

func (r *transportProviderRepository) FindByID(db *gorm.DB, id int64) (*entity.TransportProvider, error) {
	var provider entity.TransportProvider
	err := db.Where("id = ?", id).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *transportProviderRepository) LockByID(db *gorm.DB, id int64) (*entity.TransportProvider, error) {
	var provider entity.TransportProvider
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *transportProviderRepository) FindAll(db *gorm.DB, kind entity.TransportType) ([]entity.TransportProvider, error) {
	var providers []entity.TransportProvider
	query := db.Model(&entity.TransportProvider{})
	if kind != "" {
		query = query.Where("type = ?", kind)
	}
	err := query.Order("rating DESC, id ASC").Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *transportProviderRepository) FindAvailable(db *gorm.DB, kind entity.TransportType) ([]entity.TransportProvider, error) {
	var providers []entity.TransportProvider
	err := db.Where("type = ? AND is_available = ?", kind, true).
		Order("rating DESC, id ASC").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *transportProviderRepository) Update(db *gorm.DB, provider *entity.TransportProvider) error {
	return db.Save(provider).Error
}
