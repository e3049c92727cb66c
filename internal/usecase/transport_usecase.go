package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"
	"telehealth-api/pkg/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProviderNotFound      = errors.New("transport provider not found")
	ErrProviderUnavailable   = errors.New("transport provider is not available")
	ErrBookingNotFound       = errors.New("transport booking not found")
	ErrTransportTypeRequired = errors.New("transport type is required")
	ErrInvalidTransportType  = errors.New("invalid transport type")
	ErrInvalidDistance       = errors.New("distance must not be negative")
	ErrActualFareNotAllowed  = errors.New("actual fare can only be set when completing a booking")
)

const (
	bookingEntity  = "transport_booking"
	providerEntity = "transport_provider"
)

type TransportUsecase interface {
	ListProviders(ctx context.Context, kind string) (*dto.ProviderListResponse, error)
	ListAvailableProviders(ctx context.Context, kind string) (*dto.ProviderListResponse, error)
	CreateProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	UpdateProvider(ctx context.Context, id int64, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error)
	QuoteFare(ctx context.Context, providerID int64, distanceKm *decimal.Decimal) (*dto.FareQuoteResponse, error)

	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, id int64) (*dto.BookingResponse, error)
	ListBookingsByPatient(ctx context.Context, patientID int64) (*dto.BookingListResponse, error)
	ListBookingsByProvider(ctx context.Context, providerID int64) (*dto.BookingListResponse, error)
	ListPendingBookings(ctx context.Context) (*dto.BookingListResponse, error)
	UpdateBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
}

type transportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	accountRepo     repository.AccountRepository
	providerRepo    repository.TransportProviderRepository
	bookingRepo     repository.TransportBookingRepository
	availability    *service.AvailabilityCache
	auditService    service.AuditService
	metrics         *metrics.Metrics
	defaultDistance decimal.Decimal
}

func NewTransportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	providerRepo repository.TransportProviderRepository,
	bookingRepo repository.TransportBookingRepository,
	availability *service.AvailabilityCache,
	auditService service.AuditService,
	m *metrics.Metrics,
	defaultDistanceKm float64,
) TransportUsecase {
	return &transportUsecase{
		db:              db,
		log:             log,
		accountRepo:     accountRepo,
		providerRepo:    providerRepo,
		bookingRepo:     bookingRepo,
		availability:    availability,
		auditService:    auditService,
		metrics:         m,
		defaultDistance: decimal.NewFromFloat(defaultDistanceKm),
	}
}

// ListProviders lists every provider, narrowed to one type when kind is set.
func (u *transportUsecase) ListProviders(ctx context.Context, kind string) (*dto.ProviderListResponse, error) {
	transportType := entity.TransportType(kind)
	if kind != "" && !transportType.IsValid() {
		return nil, ErrInvalidTransportType
	}

	providers, err := u.providerRepo.FindAll(u.db.WithContext(ctx), transportType)
	if err != nil {
		u.log.Warnf("Failed to list transport providers: %+v", err)
		return nil, err
	}
	return toProviderList(providers), nil
}

func (u *transportUsecase) ListAvailableProviders(ctx context.Context, kind string) (*dto.ProviderListResponse, error) {
	if kind == "" {
		return nil, ErrTransportTypeRequired
	}
	transportType := entity.TransportType(kind)
	if !transportType.IsValid() {
		return nil, ErrInvalidTransportType
	}

	providers, err := u.availability.Providers(ctx, transportType, func() ([]entity.TransportProvider, error) {
		return u.providerRepo.FindAvailable(u.db.WithContext(ctx), transportType)
	})
	if err != nil {
		u.log.Warnf("Failed to list available %s providers: %+v", kind, err)
		return nil, err
	}
	return toProviderList(providers), nil
}

func (u *transportUsecase) CreateProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	provider := &entity.TransportProvider{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Type:          entity.TransportType(req.Type),
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		IsAvailable:   isAvailable,
		BaseFare:      req.BaseFare.Round(2),
		PerKmRate:     req.PerKmRate.Round(2),
		Rating:        decimal.Zero,
		LicenseNumber: req.LicenseNumber,
		DriverName:    req.DriverName,
		VehicleNumber: req.VehicleNumber,
	}
	if err := u.providerRepo.Create(tx, provider); err != nil {
		u.log.Warnf("Failed to create transport provider: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionProviderCreate, providerEntity, provider.ID, converter.ProviderToResponse(provider)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availability.InvalidateProviders(ctx, provider.Type)
	return converter.ProviderToResponse(provider), nil
}

// UpdateProvider applies the non-nil fields of req and drops the cached list for the provider's type.
func (u *transportUsecase) UpdateProvider(ctx context.Context, id int64, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	provider, err := u.providerRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find transport provider %d: %+v", id, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	oldValue := converter.ProviderToResponse(provider)

	if req.Name != nil {
		provider.Name = *req.Name
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.Location != nil {
		provider.Location = *req.Location
	}
	if req.Latitude != nil {
		provider.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		provider.Longitude = req.Longitude
	}
	if req.IsAvailable != nil {
		provider.IsAvailable = *req.IsAvailable
	}
	if req.BaseFare != nil {
		provider.BaseFare = req.BaseFare.Round(2)
	}
	if req.PerKmRate != nil {
		provider.PerKmRate = req.PerKmRate.Round(2)
	}
	if req.DriverName != nil {
		provider.DriverName = *req.DriverName
	}
	if req.VehicleNumber != nil {
		provider.VehicleNumber = *req.VehicleNumber
	}

	if err := u.providerRepo.Update(tx, provider); err != nil {
		u.log.Warnf("Failed to update transport provider %d: %+v", id, err)
		return nil, err
	}

	newValue := converter.ProviderToResponse(provider)
	if err := u.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionProviderUpdate, providerEntity, id, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availability.InvalidateProviders(ctx, provider.Type)
	return newValue, nil
}

// QuoteFare estimates a trip fare without creating anything. A nil distance uses the configured default.
func (u *transportUsecase) QuoteFare(ctx context.Context, providerID int64, distanceKm *decimal.Decimal) (*dto.FareQuoteResponse, error) {
	distance, err := u.distanceOrDefault(distanceKm)
	if err != nil {
		return nil, err
	}

	provider, err := u.providerRepo.FindByID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find transport provider %d: %+v", providerID, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	return &dto.FareQuoteResponse{
		ProviderID:    provider.ID,
		DistanceKm:    distance,
		BaseFare:      provider.BaseFare,
		PerKmRate:     provider.PerKmRate,
		EstimatedFare: provider.EstimateFare(distance),
	}, nil
}

// CreateBooking books a provider for a patient.
//
// The provider row is locked inside the transaction, so availability is checked against committed
// state. The fare is always computed here from the provider tariff; a client estimate is ignored.
func (u *transportUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	distance, err := u.distanceOrDefault(req.EstimatedDistanceKm)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.accountRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() {
		return nil, ErrPatientNotFound
	}

	provider, err := u.providerRepo.LockByID(tx, req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to lock transport provider %d: %+v", req.ProviderID, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	if !provider.IsAvailable || provider.Type != entity.TransportType(req.Type) {
		u.metrics.Rejection(bookingEntity, "provider_unavailable")
		return nil, ErrProviderUnavailable
	}

	booking := &entity.TransportBooking{
		PatientID:           req.PatientID,
		ProviderID:          req.ProviderID,
		Type:                provider.Type,
		PickupLocation:      req.PickupLocation,
		DropoffLocation:     req.DropoffLocation,
		PickupLatitude:      req.PickupLatitude,
		PickupLongitude:     req.PickupLongitude,
		DropoffLatitude:     req.DropoffLatitude,
		DropoffLongitude:    req.DropoffLongitude,
		EstimatedDistance:   distance,
		EstimatedFare:       provider.EstimateFare(distance),
		Status:              entity.BookingPending,
		Urgency:             entity.Urgency(req.Urgency),
		SpecialRequirements: req.SpecialRequirements,
		PatientCondition:    req.PatientCondition,
		ContactNumber:       req.ContactNumber,
		BookingTime:         time.Now(),
		Notes:               req.Notes,
	}
	if err := u.bookingRepo.Create(tx, booking); err != nil {
		u.log.Warnf("Failed to create transport booking: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, int64Ptr(req.PatientID), entity.AuditActionBookingCreate, bookingEntity, booking.ID, converter.BookingToResponse(booking)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Transport booking created: id=%d, patient=%d, provider=%d, fare=%s", booking.ID, req.PatientID, req.ProviderID, booking.EstimatedFare)
	return u.reload(ctx, booking, nil)
}

func (u *transportUsecase) GetBooking(ctx context.Context, id int64) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find transport booking %d: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return converter.BookingToResponse(booking), nil
}

func (u *transportUsecase) ListBookingsByPatient(ctx context.Context, patientID int64) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for patient %d: %+v", patientID, err)
		return nil, err
	}
	return toBookingList(bookings), nil
}

func (u *transportUsecase) ListBookingsByProvider(ctx context.Context, providerID int64) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for provider %d: %+v", providerID, err)
		return nil, err
	}
	return toBookingList(bookings), nil
}

func (u *transportUsecase) ListPendingBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByStatus(u.db.WithContext(ctx), entity.BookingPending)
	if err != nil {
		u.log.Warnf("Failed to find pending bookings: %+v", err)
		return nil, err
	}
	return toBookingList(bookings), nil
}

// UpdateBooking applies a partial update. A status goes through the transition table and stamps
// the phase timestamp for the target status; actualFare is only accepted together with completed.
func (u *transportUsecase) UpdateBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	var next entity.BookingStatus
	if req.Status != nil {
		next = entity.BookingStatus(*req.Status)
	}
	if req.ActualFare != nil && next != entity.BookingCompleted {
		return nil, ErrActualFareNotAllowed
	}

	fields := map[string]interface{}{}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.SpecialRequirements != nil {
		fields["special_requirements"] = *req.SpecialRequirements
	}
	if req.PatientCondition != nil {
		fields["patient_condition"] = *req.PatientCondition
	}
	if req.ActualFare != nil {
		fields["actual_fare"] = req.ActualFare.Round(2)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.bookingRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find transport booking %d: %+v", id, err)
		return nil, err
	}
	if current == nil {
		return nil, ErrBookingNotFound
	}

	if next == "" {
		if len(fields) == 0 {
			return converter.BookingToResponse(current), nil
		}
		if _, err := u.bookingRepo.UpdateFields(tx, id, fields); err != nil {
			u.log.Warnf("Failed to update transport booking %d: %+v", id, err)
			return nil, err
		}
		if err := u.auditService.LogUpdate(ctx, tx, int64Ptr(current.PatientID), entity.AuditActionBookingUpdate, bookingEntity, id, nil, fields); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}
		return u.reload(ctx, current, fields)
	}

	from := current.Status
	if !from.CanTransitionTo(next) {
		u.metrics.Rejection(bookingEntity, "illegal_transition")
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, next)
	}

	fields["status"] = next
	if column := next.PhaseColumn(); column != "" {
		fields[column] = time.Now()
	}

	rows, err := u.bookingRepo.UpdateStatus(tx, id, from, fields)
	if err != nil {
		u.log.Warnf("Failed to update transport booking %d status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		u.metrics.Rejection(bookingEntity, "concurrent_update")
		return nil, fmt.Errorf("%w: booking %d is no longer %s", ErrIllegalTransition, id, from)
	}

	if err := u.auditService.LogTransition(ctx, tx, int64Ptr(current.PatientID), entity.AuditActionBookingStatus, bookingEntity, id, string(from), string(next)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.Transition(bookingEntity, string(from), string(next))
	u.log.Infof("Transport booking %d moved from %s to %s", id, from, next)
	return u.reload(ctx, current, fields)
}

func (u *transportUsecase) distanceOrDefault(distanceKm *decimal.Decimal) (decimal.Decimal, error) {
	if distanceKm == nil {
		return u.defaultDistance, nil
	}
	if distanceKm.IsNegative() {
		return decimal.Zero, ErrInvalidDistance
	}
	return distanceKm.Round(2), nil
}

// reload re-reads the booking with patient and provider joined, falling back to the
// pre-update row with the committed fields applied.
func (u *transportUsecase) reload(ctx context.Context, fallback *entity.TransportBooking, fields map[string]interface{}) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), fallback.ID)
	if err != nil || booking == nil {
		u.log.Warnf("Failed to reload transport booking %d: %+v", fallback.ID, err)
		applyBookingFields(fallback, fields)
		return converter.BookingToResponse(fallback), nil
	}
	return converter.BookingToResponse(booking), nil
}

func applyBookingFields(b *entity.TransportBooking, fields map[string]interface{}) {
	for column, value := range fields {
		switch column {
		case "status":
			b.Status = value.(entity.BookingStatus)
		case "notes":
			b.Notes = value.(string)
		case "special_requirements":
			b.SpecialRequirements = value.(string)
		case "patient_condition":
			b.PatientCondition = value.(string)
		case "actual_fare":
			fare := value.(decimal.Decimal)
			b.ActualFare = &fare
		case "accepted_at", "arrived_at", "completed_at", "cancelled_at":
			at := value.(time.Time)
			switch column {
			case "accepted_at":
				b.AcceptedAt = &at
			case "arrived_at":
				b.ArrivedAt = &at
			case "completed_at":
				b.CompletedAt = &at
			default:
				b.CancelledAt = &at
			}
		}
	}
}

func toProviderList(providers []entity.TransportProvider) *dto.ProviderListResponse {
	return &dto.ProviderListResponse{
		Providers: converter.ProvidersToResponses(providers),
		Total:     len(providers),
	}
}

func toBookingList(bookings []entity.TransportBooking) *dto.BookingListResponse {
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}
}
