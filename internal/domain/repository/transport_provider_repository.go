package repository

import (
	"telehealth-api/internal/domain/entity"

	"gorm.io/gorm"
)

type TransportProviderRepository interface {
	Create(db *gorm.DB, provider *entity.TransportProvider) error
	FindByID(db *gorm.DB, id int64) (*entity.TransportProvider, error)
	// LockByID reads the provider row FOR UPDATE; call it inside a transaction.
	LockByID(db *gorm.DB, id int64) (*entity.TransportProvider, error)
	// FindAll lists every provider, optionally narrowed to one type when kind is non-empty.
	FindAll(db *gorm.DB, kind entity.TransportType) ([]entity.TransportProvider, error)
	FindAvailable(db *gorm.DB, kind entity.TransportType) ([]entity.TransportProvider, error)
	Update(db *gorm.DB, provider *entity.TransportProvider) error
}
