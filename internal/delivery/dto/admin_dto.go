package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type VerifyDoctorRequest struct {
	IsVerified *bool `json:"isVerified" validate:"required"`
}

type AdminStatsResponse struct {
	ActivePatients     int64           `json:"activePatients"`
	VerifiedDoctors    int64           `json:"verifiedDoctors"`
	TotalConsultations int64           `json:"totalConsultations"`
	TotalDonations     decimal.Decimal `json:"totalDonations"`
}

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *int64                 `json:"userId,omitempty"`
	UserEmail string                 `json:"userEmail,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
