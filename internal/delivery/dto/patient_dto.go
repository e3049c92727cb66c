package dto

// Request DTOs

// UpdatePatientProfileRequest is a partial update; nil fields are left unchanged.
type UpdatePatientProfileRequest struct {
	DateOfBirth      *string                `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string                `json:"gender" validate:"omitempty,oneof=male female other"`
	Location         *string                `json:"location" validate:"omitempty,max=255"`
	EmergencyContact *string                `json:"emergencyContact" validate:"omitempty,max=100"`
	MedicalHistory   map[string]interface{} `json:"medicalHistory" validate:"omitempty"`
}

// Response DTOs

type PatientProfileResponse struct {
	UserID           int64                  `json:"userId"`
	DateOfBirth      string                 `json:"dateOfBirth,omitempty"`
	Gender           string                 `json:"gender,omitempty"`
	Location         string                 `json:"location,omitempty"`
	EmergencyContact string                 `json:"emergencyContact,omitempty"`
	MedicalHistory   map[string]interface{} `json:"medicalHistory,omitempty"`
	User             *AccountResponse       `json:"user,omitempty"`
}
