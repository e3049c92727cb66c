package entity

import "time"

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID           int64      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender           string     `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Location         string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	EmergencyContact string     `gorm:"type:varchar(100)" json:"emergency_contact,omitempty"`
	MedicalHistory   JSON       `gorm:"type:jsonb" json:"medical_history,omitempty"`

	// Relationships
	User *Account `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
