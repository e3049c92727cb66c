package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// DonationToResponse hides donor identity for anonymous pledges.
func DonationToResponse(d *entity.Donation) *dto.DonationResponse {
	if d == nil {
		return nil
	}

	resp := &dto.DonationResponse{
		ID:          d.ID,
		Amount:      d.Amount,
		Purpose:     d.Purpose,
		IsAnonymous: d.IsAnonymous,
		CreatedAt:   d.CreatedAt,
	}
	if !d.IsAnonymous {
		resp.DonorName = d.DonorName
		resp.DonorEmail = d.DonorEmail
	}
	return resp
}

func DonationsToResponses(donations []entity.Donation) []dto.DonationResponse {
	responses := make([]dto.DonationResponse, len(donations))
	for i := range donations {
		responses[i] = *DonationToResponse(&donations[i])
	}
	return responses
}

func DonationRequestToResponse(r *entity.DonationRequest) *dto.DonationRequestResponse {
	if r == nil {
		return nil
	}

	return &dto.DonationRequestResponse{
		ID:              r.ID,
		PatientID:       r.PatientID,
		Amount:          r.Amount,
		Purpose:         r.Purpose,
		MedicalDocument: r.MedicalDocument,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		Patient:         AccountToResponse(r.Patient),
	}
}

func DonationRequestsToResponses(requests []entity.DonationRequest) []dto.DonationRequestResponse {
	responses := make([]dto.DonationRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *DonationRequestToResponse(&requests[i])
	}
	return responses
}
