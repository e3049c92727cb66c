package entity

import "time"

type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationActive    ConsultationStatus = "active"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationCancelled ConsultationStatus = "cancelled"
)

var consultationTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationPending:   {ConsultationActive, ConsultationCancelled},
	ConsultationActive:    {ConsultationCompleted, ConsultationCancelled},
	ConsultationCompleted: {},
	ConsultationCancelled: {},
}

func (s ConsultationStatus) IsValid() bool {
	_, ok := consultationTransitions[s]
	return ok
}

func (s ConsultationStatus) IsTerminal() bool {
	return s == ConsultationCompleted || s == ConsultationCancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	for _, allowed := range consultationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ConsultationType string

const (
	ConsultationEmergency ConsultationType = "emergency"
	ConsultationRegular   ConsultationType = "regular"
)

func (t ConsultationType) IsValid() bool {
	return t == ConsultationEmergency || t == ConsultationRegular
}

// Consultation is a bounded interaction between one patient and one doctor.
type Consultation struct {
	ID           int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    int64              `gorm:"not null;index" json:"patient_id"`
	DoctorID     int64              `gorm:"not null;index" json:"doctor_id"`
	Status       ConsultationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Type         ConsultationType   `gorm:"type:varchar(20);not null" json:"type"`
	Symptoms     string             `gorm:"type:text" json:"symptoms"`
	Diagnosis    string             `gorm:"type:text" json:"diagnosis"`
	Prescription string             `gorm:"type:text" json:"prescription"`
	Notes        string             `gorm:"type:text" json:"notes"`
	ScheduledAt  *time.Time         `json:"scheduled_at,omitempty"`
	StartedAt    *time.Time         `json:"started_at,omitempty"`
	EndedAt      *time.Time         `json:"ended_at,omitempty"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Account `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Account `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}
