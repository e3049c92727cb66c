package dto

import "time"

// Request DTOs

type CreateConsultationRequest struct {
	PatientID   int64      `json:"patientId" validate:"required,gt=0"`
	DoctorID    int64      `json:"doctorId" validate:"required,gt=0"`
	Type        string     `json:"type" validate:"required,oneof=emergency regular"`
	Symptoms    string     `json:"symptoms" validate:"required,max=5000"`
	ScheduledAt *time.Time `json:"scheduledAt" validate:"omitempty"`
}

// UpdateConsultationRequest is a partial update. When Status is set the matching
// lifecycle transition is applied; otherwise only the free-text fields change.
type UpdateConsultationRequest struct {
	Status       *string `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
	Diagnosis    *string `json:"diagnosis" validate:"omitempty,max=5000"`
	Prescription *string `json:"prescription" validate:"omitempty,max=5000"`
	Notes        *string `json:"notes" validate:"omitempty,max=5000"`
}

type CompleteConsultationRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"max=5000"`
	Prescription string `json:"prescription" validate:"max=5000"`
	Notes        string `json:"notes" validate:"max=5000"`
}

type CancelConsultationRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

// Response DTOs

type ConsultationResponse struct {
	ID           int64            `json:"id"`
	PatientID    int64            `json:"patientId"`
	DoctorID     int64            `json:"doctorId"`
	Status       string           `json:"status"`
	Type         string           `json:"type"`
	Symptoms     string           `json:"symptoms"`
	Diagnosis    string           `json:"diagnosis"`
	Prescription string           `json:"prescription"`
	Notes        string           `json:"notes"`
	ScheduledAt  *time.Time       `json:"scheduledAt,omitempty"`
	StartedAt    *time.Time       `json:"startedAt,omitempty"`
	EndedAt      *time.Time       `json:"endedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Patient      *AccountResponse `json:"patient,omitempty"`
	Doctor       *AccountResponse `json:"doctor,omitempty"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}
