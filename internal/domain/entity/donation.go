package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a recorded pledge. No payment is captured.
type Donation struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DonorName   string          `gorm:"type:varchar(255)" json:"donor_name,omitempty"`
	DonorEmail  string          `gorm:"type:varchar(255)" json:"donor_email,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Purpose     string          `gorm:"type:text" json:"purpose,omitempty"`
	IsAnonymous bool            `gorm:"not null" json:"is_anonymous"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Donation) TableName() string {
	return "donations"
}

type DonationRequestStatus string

const (
	DonationRequestPending   DonationRequestStatus = "pending"
	DonationRequestApproved  DonationRequestStatus = "approved"
	DonationRequestRejected  DonationRequestStatus = "rejected"
	DonationRequestFulfilled DonationRequestStatus = "fulfilled"
)

var donationRequestTransitions = map[DonationRequestStatus][]DonationRequestStatus{
	DonationRequestPending:   {DonationRequestApproved, DonationRequestRejected},
	DonationRequestApproved:  {DonationRequestFulfilled},
	DonationRequestRejected:  {},
	DonationRequestFulfilled: {},
}

func (s DonationRequestStatus) IsValid() bool {
	_, ok := donationRequestTransitions[s]
	return ok
}

func (s DonationRequestStatus) CanTransitionTo(next DonationRequestStatus) bool {
	for _, allowed := range donationRequestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DonationRequest is a patient's request for financial assistance.
type DonationRequest struct {
	ID              int64                 `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int64                 `gorm:"not null;index" json:"patient_id"`
	Amount          decimal.Decimal       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Purpose         string                `gorm:"type:text;not null" json:"purpose"`
	MedicalDocument string                `gorm:"type:text" json:"medical_document,omitempty"`
	Status          DonationRequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Account `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DonationRequest) TableName() string {
	return "donation_requests"
}
