package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateProviderRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Phone         string          `json:"phone" validate:"required,max=30"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Type          string          `json:"type" validate:"required,oneof=ambulance cab motorbike"`
	Location      string          `json:"location" validate:"required,max=255"`
	Latitude      *float64        `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64        `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsAvailable   *bool           `json:"isAvailable" validate:"omitempty"`
	BaseFare      decimal.Decimal `json:"baseFare" validate:"gte=0"`
	PerKmRate     decimal.Decimal `json:"perKmRate" validate:"gte=0"`
	LicenseNumber string          `json:"licenseNumber" validate:"omitempty,max=100"`
	DriverName    string          `json:"driverName" validate:"omitempty,max=255"`
	VehicleNumber string          `json:"vehicleNumber" validate:"omitempty,max=50"`
}

// UpdateProviderRequest is a partial update; nil fields are left unchanged.
type UpdateProviderRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=255"`
	Phone         *string          `json:"phone" validate:"omitempty,max=30"`
	Location      *string          `json:"location" validate:"omitempty,max=255"`
	Latitude      *float64         `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64         `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsAvailable   *bool            `json:"isAvailable" validate:"omitempty"`
	BaseFare      *decimal.Decimal `json:"baseFare" validate:"omitempty,gte=0"`
	PerKmRate     *decimal.Decimal `json:"perKmRate" validate:"omitempty,gte=0"`
	DriverName    *string          `json:"driverName" validate:"omitempty,max=255"`
	VehicleNumber *string          `json:"vehicleNumber" validate:"omitempty,max=50"`
}

// CreateBookingRequest carries an estimatedFare for compatibility with older clients.
// It is ignored: the fare is always recomputed from the provider tariff.
type CreateBookingRequest struct {
	PatientID           int64            `json:"patientId" validate:"required,gt=0"`
	ProviderID          int64            `json:"providerId" validate:"required,gt=0"`
	Type                string           `json:"type" validate:"required,oneof=ambulance cab motorbike"`
	PickupLocation      string           `json:"pickupLocation" validate:"required"`
	DropoffLocation     string           `json:"dropoffLocation" validate:"required"`
	PickupLatitude      *float64         `json:"pickupLatitude" validate:"omitempty,gte=-90,lte=90"`
	PickupLongitude     *float64         `json:"pickupLongitude" validate:"omitempty,gte=-180,lte=180"`
	DropoffLatitude     *float64         `json:"dropoffLatitude" validate:"omitempty,gte=-90,lte=90"`
	DropoffLongitude    *float64         `json:"dropoffLongitude" validate:"omitempty,gte=-180,lte=180"`
	EstimatedDistanceKm *decimal.Decimal `json:"estimatedDistanceKm" validate:"omitempty,gte=0,lte=10000"`
	EstimatedFare       *decimal.Decimal `json:"estimatedFare" validate:"omitempty"`
	Urgency             string           `json:"urgency" validate:"required,oneof=low medium high emergency"`
	SpecialRequirements string           `json:"specialRequirements" validate:"omitempty,max=2000"`
	PatientCondition    string           `json:"patientCondition" validate:"omitempty,max=2000"`
	ContactNumber       string           `json:"contactNumber" validate:"required,max=30"`
	Notes               string           `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateBookingRequest is a partial update. When Status is set the matching
// transition is applied; ActualFare is only accepted together with status completed.
type UpdateBookingRequest struct {
	Status              *string          `json:"status" validate:"omitempty,oneof=pending accepted en_route arrived in_transit completed cancelled"`
	ActualFare          *decimal.Decimal `json:"actualFare" validate:"omitempty,gte=0"`
	Notes               *string          `json:"notes" validate:"omitempty,max=2000"`
	SpecialRequirements *string          `json:"specialRequirements" validate:"omitempty,max=2000"`
	PatientCondition    *string          `json:"patientCondition" validate:"omitempty,max=2000"`
}

// Response DTOs

type ProviderResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email,omitempty"`
	Type          string          `json:"type"`
	Location      string          `json:"location"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	IsAvailable   bool            `json:"isAvailable"`
	BaseFare      decimal.Decimal `json:"baseFare"`
	PerKmRate     decimal.Decimal `json:"perKmRate"`
	Rating        decimal.Decimal `json:"rating"`
	TotalRatings  int             `json:"totalRatings"`
	LicenseNumber string          `json:"licenseNumber,omitempty"`
	DriverName    string          `json:"driverName,omitempty"`
	VehicleNumber string          `json:"vehicleNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Total     int                `json:"total"`
}

type FareQuoteResponse struct {
	ProviderID    int64           `json:"providerId"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	BaseFare      decimal.Decimal `json:"baseFare"`
	PerKmRate     decimal.Decimal `json:"perKmRate"`
	EstimatedFare decimal.Decimal `json:"estimatedFare"`
}

type BookingResponse struct {
	ID                  int64             `json:"id"`
	PatientID           int64             `json:"patientId"`
	ProviderID          int64             `json:"providerId"`
	Type                string            `json:"type"`
	PickupLocation      string            `json:"pickupLocation"`
	DropoffLocation     string            `json:"dropoffLocation"`
	PickupLatitude      *float64          `json:"pickupLatitude,omitempty"`
	PickupLongitude     *float64          `json:"pickupLongitude,omitempty"`
	DropoffLatitude     *float64          `json:"dropoffLatitude,omitempty"`
	DropoffLongitude    *float64          `json:"dropoffLongitude,omitempty"`
	EstimatedDistance   decimal.Decimal   `json:"estimatedDistance"`
	EstimatedFare       decimal.Decimal   `json:"estimatedFare"`
	ActualFare          *decimal.Decimal  `json:"actualFare,omitempty"`
	Status              string            `json:"status"`
	Urgency             string            `json:"urgency"`
	SpecialRequirements string            `json:"specialRequirements,omitempty"`
	PatientCondition    string            `json:"patientCondition,omitempty"`
	ContactNumber       string            `json:"contactNumber"`
	BookingTime         time.Time         `json:"bookingTime"`
	AcceptedAt          *time.Time        `json:"acceptedAt,omitempty"`
	ArrivedAt           *time.Time        `json:"arrivedAt,omitempty"`
	CompletedAt         *time.Time        `json:"completedAt,omitempty"`
	CancelledAt         *time.Time        `json:"cancelledAt,omitempty"`
	Notes               string            `json:"notes,omitempty"`
	Patient             *AccountResponse  `json:"patient,omitempty"`
	Provider            *ProviderResponse `json:"provider,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
