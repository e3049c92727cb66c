package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateDonationRequest struct {
	DonorName   string          `json:"donorName" validate:"omitempty,max=255"`
	DonorEmail  string          `json:"donorEmail" validate:"omitempty,email"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Purpose     string          `json:"purpose" validate:"omitempty,max=2000"`
	IsAnonymous bool            `json:"isAnonymous"`
}

type CreateDonationRequestRequest struct {
	PatientID       int64           `json:"patientId" validate:"required,gt=0"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	Purpose         string          `json:"purpose" validate:"required,max=2000"`
	MedicalDocument string          `json:"medicalDocument" validate:"omitempty,max=2000"`
}

type UpdateDonationRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected fulfilled"`
}

type DonationResponse struct {
	ID          int64           `json:"id"`
	DonorName   string          `json:"donorName,omitempty"`
	DonorEmail  string          `json:"donorEmail,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     string          `json:"purpose,omitempty"`
	IsAnonymous bool            `json:"isAnonymous"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type DonationListResponse struct {
	Donations []DonationResponse `json:"donations"`
	Total     int                `json:"total"`
}

type DonationStatsResponse struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type DonationRequestResponse struct {
	ID              int64            `json:"id"`
	PatientID       int64            `json:"patientId"`
	Amount          decimal.Decimal  `json:"amount"`
	Purpose         string           `json:"purpose"`
	MedicalDocument string           `json:"medicalDocument,omitempty"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	Patient         *AccountResponse `json:"patient,omitempty"`
}

type DonationRequestListResponse struct {
	Requests []DonationRequestResponse `json:"requests"`
	Total    int                       `json:"total"`
}
