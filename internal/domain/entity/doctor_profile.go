package entity

import "github.com/shopspring/decimal"

// DoctorProfile holds doctor-specific data. Rating and TotalRatings are a cache
// derived from the ratings table and are only written by the rating recompute.
type DoctorProfile struct {
	UserID          int64           `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(100);not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Experience      int             `gorm:"not null" json:"experience"`
	Location        string          `gorm:"type:varchar(255);not null" json:"location"`
	IsAvailable     bool            `gorm:"not null;index" json:"is_available"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	Rating          decimal.Decimal `gorm:"type:decimal(3,2);not null" json:"rating"`
	TotalRatings    int             `gorm:"not null" json:"total_ratings"`

	// Relationships
	User *Account `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsMatchable reports whether the doctor may be offered to a patient:
// the profile is toggled available and the owning account is verified.
func (p *DoctorProfile) IsMatchable() bool {
	return p.IsAvailable && p.User != nil && p.User.IsVerified
}
