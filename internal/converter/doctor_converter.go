package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		UserID:          profile.UserID,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		Experience:      profile.Experience,
		Location:        profile.Location,
		IsAvailable:     profile.IsAvailable,
		ConsultationFee: profile.ConsultationFee,
		Rating:          profile.Rating,
		TotalRatings:    profile.TotalRatings,
		User:            AccountToResponse(profile.User),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}
