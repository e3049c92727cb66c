package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePharmacyRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Address       string   `json:"address" validate:"required"`
	Phone         string   `json:"phone" validate:"omitempty,max=30"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	LicenseNumber string   `json:"licenseNumber" validate:"omitempty,max=100"`
	IsOpen        *bool    `json:"isOpen" validate:"omitempty"`
}

type CreateMedicineRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	GenericName          string `json:"genericName" validate:"omitempty,max=255"`
	Manufacturer         string `json:"manufacturer" validate:"omitempty,max=255"`
	Description          string `json:"description" validate:"omitempty"`
	RequiresPrescription bool   `json:"requiresPrescription"`
}

type SetInventoryRequest struct {
	MedicineID int64           `json:"medicineId" validate:"required,gt=0"`
	Stock      int             `json:"stock" validate:"gte=0"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
}

type PharmacyResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	LicenseNumber string    `json:"licenseNumber,omitempty"`
	IsOpen        bool      `json:"isOpen"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PharmacyListResponse struct {
	Pharmacies []PharmacyResponse `json:"pharmacies"`
	Total      int                `json:"total"`
}

type MedicineResponse struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	GenericName          string `json:"genericName,omitempty"`
	Manufacturer         string `json:"manufacturer,omitempty"`
	Description          string `json:"description,omitempty"`
	RequiresPrescription bool   `json:"requiresPrescription"`
}

type InventoryItemResponse struct {
	ID          int64             `json:"id"`
	PharmacyID  int64             `json:"pharmacyId"`
	MedicineID  int64             `json:"medicineId"`
	Stock       int               `json:"stock"`
	Price       decimal.Decimal   `json:"price"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Medicine    *MedicineResponse `json:"medicine,omitempty"`
	Pharmacy    *PharmacyResponse `json:"pharmacy,omitempty"`
}

type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Total int                     `json:"total"`
}
