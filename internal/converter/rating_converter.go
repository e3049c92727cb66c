package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// RatingToResponse attaches the doctor's aggregate as it stood after the rating was applied.
func RatingToResponse(rating *entity.Rating, profile *entity.DoctorProfile) *dto.RatingResponse {
	if rating == nil {
		return nil
	}

	resp := &dto.RatingResponse{
		ID:             rating.ID,
		ConsultationID: rating.ConsultationID,
		PatientID:      rating.PatientID,
		DoctorID:       rating.DoctorID,
		Rating:         rating.Rating,
		Review:         rating.Review,
		CreatedAt:      rating.CreatedAt,
	}
	if profile != nil {
		resp.DoctorRating = profile.Rating
		resp.DoctorTotalRatings = profile.TotalRatings
	}
	return resp
}
