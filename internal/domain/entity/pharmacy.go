package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Pharmacy struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Address       string    `gorm:"type:text;not null" json:"address"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(100)" json:"license_number,omitempty"`
	IsOpen        bool      `gorm:"not null" json:"is_open"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Pharmacy) TableName() string {
	return "pharmacies"
}

type Medicine struct {
	ID                   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string `gorm:"type:varchar(255);not null;index" json:"name"`
	GenericName          string `gorm:"type:varchar(255)" json:"generic_name,omitempty"`
	Manufacturer         string `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	Description          string `gorm:"type:text" json:"description,omitempty"`
	RequiresPrescription bool   `gorm:"not null" json:"requires_prescription"`
}

func (Medicine) TableName() string {
	return "medicines"
}

// PharmacyInventory is the stock and price of one medicine at one pharmacy.
type PharmacyInventory struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PharmacyID  int64           `gorm:"not null;uniqueIndex:idx_inventory_pharmacy_medicine" json:"pharmacy_id"`
	MedicineID  int64           `gorm:"not null;uniqueIndex:idx_inventory_pharmacy_medicine" json:"medicine_id"`
	Stock       int             `gorm:"not null" json:"stock"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	LastUpdated time.Time       `gorm:"not null" json:"last_updated"`

	// Relationships
	Pharmacy *Pharmacy `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`
	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

func (PharmacyInventory) TableName() string {
	return "pharmacy_inventory"
}
