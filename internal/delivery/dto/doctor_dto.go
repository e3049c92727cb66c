package dto

import "github.com/shopspring/decimal"

// Request DTOs

type CreateDoctorProfileRequest struct {
	UserID          int64           `json:"userId" validate:"required,gt=0"`
	LicenseNumber   string          `json:"licenseNumber" validate:"required,max=100"`
	Specialization  string          `json:"specialization" validate:"required,max=100"`
	Experience      int             `json:"experience" validate:"gte=0,lte=80"`
	Location        string          `json:"location" validate:"required,max=255"`
	ConsultationFee decimal.Decimal `json:"consultationFee" validate:"gte=0"`
	IsAvailable     *bool           `json:"isAvailable" validate:"omitempty"`
}

type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	UserID          int64            `json:"userId"`
	LicenseNumber   string           `json:"licenseNumber"`
	Specialization  string           `json:"specialization"`
	Experience      int              `json:"experience"`
	Location        string           `json:"location"`
	IsAvailable     bool             `json:"isAvailable"`
	ConsultationFee decimal.Decimal  `json:"consultationFee"`
	Rating          decimal.Decimal  `json:"rating"`
	TotalRatings    int              `json:"totalRatings"`
	User            *AccountResponse `json:"user,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
