package entity

import "time"

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating attaches a 1-5 score to the doctor of a completed consultation.
type Rating struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ConsultationID int64     `gorm:"not null;uniqueIndex" json:"consultation_id"`
	PatientID      int64     `gorm:"not null;index" json:"patient_id"`
	DoctorID       int64     `gorm:"not null;index" json:"doctor_id"`
	Rating         int       `gorm:"not null" json:"rating"`
	Review         string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}
