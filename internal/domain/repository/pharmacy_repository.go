package repository

import (
	"telehealth-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PharmacyRepository interface {
	Create(db *gorm.DB, pharmacy *entity.Pharmacy) error
	FindByID(db *gorm.DB, id int64) (*entity.Pharmacy, error)
	FindAll(db *gorm.DB) ([]entity.Pharmacy, error)
}

type MedicineRepository interface {
	Create(db *gorm.DB, medicine *entity.Medicine) error
	FindByID(db *gorm.DB, id int64) (*entity.Medicine, error)
}

type InventoryRepository interface {
	// Upsert inserts or replaces the stock and price for a (pharmacy, medicine) pair.
	Upsert(db *gorm.DB, item *entity.PharmacyInventory) error
	FindByPharmacyAndMedicine(db *gorm.DB, pharmacyID, medicineID int64) (*entity.PharmacyInventory, error)
	FindByPharmacyID(db *gorm.DB, pharmacyID int64) ([]entity.PharmacyInventory, error)
	SearchByMedicineName(db *gorm.DB, name string) ([]entity.PharmacyInventory, error)
}
