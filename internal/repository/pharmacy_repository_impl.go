package repository

import (
	"errors"
	"strings"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pharmacyRepository struct{}

func NewPharmacyRepository() domainRepo.PharmacyRepository {
	return &pharmacyRepository{}
}

func (r *pharmacyRepository) Create(db *gorm.DB, pharmacy *entity.Pharmacy) error {
	return db.Create(pharmacy).Error
}

func (r *pharmacyRepository) FindByID(db *gorm.DB, id int64) (*entity.Pharmacy, error) {
	var pharmacy entity.Pharmacy
	err := db.Where("id = ?", id).First(&pharmacy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacy, nil
}

func (r *pharmacyRepository) FindAll(db *gorm.DB) ([]entity.Pharmacy, error) {
	var pharmacies []entity.Pharmacy
	err := db.Order("name ASC, id ASC").Find(&pharmacies).Error
	if err != nil {
		return nil, err
	}
	return pharmacies, nil
}

type medicineRepository struct{}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{}
}

func (r *medicineRepository) Create(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Create(medicine).Error
}

func (r *medicineRepository) FindByID(db *gorm.DB, id int64) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := db.Where("id = ?", id).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

type inventoryRepository struct{}

func NewInventoryRepository() domainRepo.InventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) Upsert(db *gorm.DB, item *entity.PharmacyInventory) error {
	return db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pharmacy_id"}, {Name: "medicine_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "price", "last_updated"}),
	}).Create(item).Error
}

func (r *inventoryRepository) FindByPharmacyAndMedicine(db *gorm.DB, pharmacyID, medicineID int64) (*entity.PharmacyInventory, error) {
	var item entity.PharmacyInventory
	err := db.Preload("Medicine").
		Where("pharmacy_id = ? AND medicine_id = ?", pharmacyID, medicineID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindByPharmacyID(db *gorm.DB, pharmacyID int64) ([]entity.PharmacyInventory, error) {
	var items []entity.PharmacyInventory
	err := db.Preload("Medicine").
		Where("pharmacy_id = ?", pharmacyID).
		Order("medicine_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SearchByMedicineName matches medicine names case-insensitively, cheapest stock first.
func (r *inventoryRepository) SearchByMedicineName(db *gorm.DB, name string) ([]entity.PharmacyInventory, error) {
	var items []entity.PharmacyInventory
	err := db.
		Joins("JOIN medicines ON medicines.id = pharmacy_inventory.medicine_id").
		Where("LOWER(medicines.name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Preload("Pharmacy").Preload("Medicine").
		Order("pharmacy_inventory.price ASC, pharmacy_inventory.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
