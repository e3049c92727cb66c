package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

func ProviderToResponse(p *entity.TransportProvider) *dto.ProviderResponse {
	if p == nil {
		return nil
	}

	return &dto.ProviderResponse{
		ID:            p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		Type:          string(p.Type),
		Location:      p.Location,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		IsAvailable:   p.IsAvailable,
		BaseFare:      p.BaseFare,
		PerKmRate:     p.PerKmRate,
		Rating:        p.Rating,
		TotalRatings:  p.TotalRatings,
		LicenseNumber: p.LicenseNumber,
		DriverName:    p.DriverName,
		VehicleNumber: p.VehicleNumber,
		CreatedAt:     p.CreatedAt,
	}
}

func ProvidersToResponses(providers []entity.TransportProvider) []dto.ProviderResponse {
	responses := make([]dto.ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = *ProviderToResponse(&providers[i])
	}
	return responses
}

func BookingToResponse(b *entity.TransportBooking) *dto.BookingResponse {
	if b == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:                  b.ID,
		PatientID:           b.PatientID,
		ProviderID:          b.ProviderID,
		Type:                string(b.Type),
		PickupLocation:      b.PickupLocation,
		DropoffLocation:     b.DropoffLocation,
		PickupLatitude:      b.PickupLatitude,
		PickupLongitude:     b.PickupLongitude,
		DropoffLatitude:     b.DropoffLatitude,
		DropoffLongitude:    b.DropoffLongitude,
		EstimatedDistance:   b.EstimatedDistance,
		EstimatedFare:       b.EstimatedFare,
		ActualFare:          b.ActualFare,
		Status:              string(b.Status),
		Urgency:             string(b.Urgency),
		SpecialRequirements: b.SpecialRequirements,
		PatientCondition:    b.PatientCondition,
		ContactNumber:       b.ContactNumber,
		BookingTime:         b.BookingTime,
		AcceptedAt:          b.AcceptedAt,
		ArrivedAt:           b.ArrivedAt,
		CompletedAt:         b.CompletedAt,
		CancelledAt:         b.CancelledAt,
		Notes:               b.Notes,
		Patient:             AccountToResponse(b.Patient),
		Provider:            ProviderToResponse(b.Provider),
	}
}

func BookingsToResponses(bookings []entity.TransportBooking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
