package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	resp := &dto.PatientProfileResponse{
		UserID:           profile.UserID,
		Gender:           profile.Gender,
		Location:         profile.Location,
		EmergencyContact: profile.EmergencyContact,
		MedicalHistory:   profile.MedicalHistory,
		User:             AccountToResponse(profile.User),
	}
	if profile.DateOfBirth != nil {
		resp.DateOfBirth = profile.DateOfBirth.Format("2006-01-02")
	}
	return resp
}
