package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity, with whichever parties were joined.
func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	return &dto.ConsultationResponse{
		ID:           c.ID,
		PatientID:    c.PatientID,
		DoctorID:     c.DoctorID,
		Status:       string(c.Status),
		Type:         string(c.Type),
		Symptoms:     c.Symptoms,
		Diagnosis:    c.Diagnosis,
		Prescription: c.Prescription,
		Notes:        c.Notes,
		ScheduledAt:  c.ScheduledAt,
		StartedAt:    c.StartedAt,
		EndedAt:      c.EndedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Patient:      AccountToResponse(c.Patient),
		Doctor:       AccountToResponse(c.Doctor),
	}
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}
