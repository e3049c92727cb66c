package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransportType string

const (
	TransportAmbulance TransportType = "ambulance"
	TransportCab       TransportType = "cab"
	TransportMotorbike TransportType = "motorbike"
)

func (t TransportType) IsValid() bool {
	switch t {
	case TransportAmbulance, TransportCab, TransportMotorbike:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingEnRoute   BookingStatus = "en_route"
	BookingArrived   BookingStatus = "arrived"
	BookingInTransit BookingStatus = "in_transit"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingAccepted, BookingCancelled},
	BookingAccepted:  {BookingEnRoute, BookingCancelled},
	BookingEnRoute:   {BookingArrived, BookingCancelled},
	BookingArrived:   {BookingInTransit, BookingCancelled},
	BookingInTransit: {BookingCompleted, BookingCancelled},
	BookingCompleted: {},
	BookingCancelled: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// TransportProvider is an ambulance, cab or motorbike operator that can be booked.
type TransportProvider struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string          `gorm:"type:varchar(30);not null" json:"phone"`
	Email         string          `gorm:"type:varchar(255)" json:"email,omitempty"`
	Type          TransportType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Location      string          `gorm:"type:varchar(255);not null" json:"location"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	IsAvailable   bool            `gorm:"not null;index" json:"is_available"`
	BaseFare      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_fare"`
	PerKmRate     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"per_km_rate"`
	Rating        decimal.Decimal `gorm:"type:decimal(3,2);not null" json:"rating"`
	TotalRatings  int             `gorm:"not null" json:"total_ratings"`
	LicenseNumber string          `gorm:"type:varchar(100)" json:"license_number,omitempty"`
	DriverName    string          `gorm:"type:varchar(255)" json:"driver_name,omitempty"`
	VehicleNumber string          `gorm:"type:varchar(50)" json:"vehicle_number,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (TransportProvider) TableName() string {
	return "transport_providers"
}

// EstimateFare returns baseFare + perKmRate * distanceKm rounded to cents.
func (p *TransportProvider) EstimateFare(distanceKm decimal.Decimal) decimal.Decimal {
	return p.BaseFare.Add(p.PerKmRate.Mul(distanceKm)).Round(2)
}

// TransportBooking is a patient's request for a provider, moving through the booking status chain.
type TransportBooking struct {
	ID                  int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID           int64            `gorm:"not null;index" json:"patient_id"`
	ProviderID          int64            `gorm:"not null;index" json:"provider_id"`
	Type                TransportType    `gorm:"type:varchar(20);not null" json:"type"`
	PickupLocation      string           `gorm:"type:text;not null" json:"pickup_location"`
	DropoffLocation     string           `gorm:"type:text;not null" json:"dropoff_location"`
	PickupLatitude      *float64         `json:"pickup_latitude,omitempty"`
	PickupLongitude     *float64         `json:"pickup_longitude,omitempty"`
	DropoffLatitude     *float64         `json:"dropoff_latitude,omitempty"`
	DropoffLongitude    *float64         `json:"dropoff_longitude,omitempty"`
	EstimatedDistance   decimal.Decimal  `gorm:"type:decimal(8,2);not null" json:"estimated_distance"`
	EstimatedFare       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"estimated_fare"`
	ActualFare          *decimal.Decimal `gorm:"type:decimal(10,2)" json:"actual_fare,omitempty"`
	Status              BookingStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	Urgency             Urgency          `gorm:"type:varchar(20);not null" json:"urgency"`
	SpecialRequirements string           `gorm:"type:text" json:"special_requirements,omitempty"`
	PatientCondition    string           `gorm:"type:text" json:"patient_condition,omitempty"`
	ContactNumber       string           `gorm:"type:varchar(30);not null" json:"contact_number"`
	BookingTime         time.Time        `gorm:"not null" json:"booking_time"`
	AcceptedAt          *time.Time       `json:"accepted_at,omitempty"`
	ArrivedAt           *time.Time       `json:"arrived_at,omitempty"`
	CompletedAt         *time.Time       `json:"completed_at,omitempty"`
	CancelledAt         *time.Time       `json:"cancelled_at,omitempty"`
	Notes               string           `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient  *Account           `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Provider *TransportProvider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (TransportBooking) TableName() string {
	return "transport_bookings"
}

// PhaseColumn names the timestamp column stamped when a booking enters status s.
// Statuses without a dedicated column return "".
func (s BookingStatus) PhaseColumn() string {
	switch s {
	case BookingAccepted:
		return "accepted_at"
	case BookingArrived:
		return "arrived_at"
	case BookingCompleted:
		return "completed_at"
	case BookingCancelled:
		return "cancelled_at"
	}
	return ""
}
