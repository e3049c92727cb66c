package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRatingRequest struct {
	ConsultationID int64  `json:"consultationId" validate:"required,gt=0"`
	PatientID      int64  `json:"patientId" validate:"required,gt=0"`
	DoctorID       int64  `json:"doctorId" validate:"required,gt=0"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Review         string `json:"review" validate:"omitempty,max=2000"`
}

type RatingResponse struct {
	ID             int64     `json:"id"`
	ConsultationID int64     `json:"consultationId"`
	PatientID      int64     `json:"patientId"`
	DoctorID       int64     `json:"doctorId"`
	Rating         int       `json:"rating"`
	Review         string    `json:"review,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`

	// Doctor aggregate after this rating was counted.
	DoctorRating       decimal.Decimal `json:"doctorRating"`
	DoctorTotalRatings int             `json:"doctorTotalRatings"`
}
