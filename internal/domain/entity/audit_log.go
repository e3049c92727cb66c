package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64    `gorm:"index" json:"user_id,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *Account `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is a free-form document stored as jsonb.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal JSON value: ", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

const (
	AuditActionAccountRegister       = "account.register"
	AuditActionAccountLogin          = "account.login"
	AuditActionDoctorCreate          = "doctor.create"
	AuditActionDoctorAvailability    = "doctor.availability"
	AuditActionDoctorVerify          = "doctor.verify"
	AuditActionProfileUpdate         = "profile.update"
	AuditActionConsultationCreate    = "consultation.create"
	AuditActionConsultationStatus    = "consultation.status"
	AuditActionConsultationUpdate    = "consultation.update"
	AuditActionRatingCreate          = "rating.create"
	AuditActionProviderCreate        = "provider.create"
	AuditActionProviderUpdate        = "provider.update"
	AuditActionBookingCreate         = "booking.create"
	AuditActionBookingStatus         = "booking.status"
	AuditActionBookingUpdate         = "booking.update"
	AuditActionInventoryUpdate       = "inventory.update"
	AuditActionDonationCreate        = "donation.create"
	AuditActionDonationRequestCreate = "donation_request.create"
	AuditActionDonationRequestStatus = "donation_request.status"
)
