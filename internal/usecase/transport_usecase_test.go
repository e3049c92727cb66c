package usecase

import (
	"context"
	"testing"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingRequest(patientID, providerID int64, kind entity.TransportType) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		PatientID:       patientID,
		ProviderID:      providerID,
		Type:            string(kind),
		PickupLocation:  "Home",
		DropoffLocation: "Clinic",
		Urgency:         string(entity.UrgencyHigh),
		ContactNumber:   "+254711111111",
	}
}

func TestCreateBooking_FareComputedServerSide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	provider := testutil.CreateProvider(t, f.db, "Rapid", entity.TransportAmbulance, true, "4.00")

	req := newBookingRequest(patient.ID, provider.ID, entity.TransportAmbulance)
	clientFare := decimal.NewFromInt(1)
	req.EstimatedFare = &clientFare

	// 50.00 + 12.50 * 5 km default
	booking, err := f.transport.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "pending", booking.Status)
	assert.True(t, decimal.RequireFromString("112.50").Equal(booking.EstimatedFare), booking.EstimatedFare.String())
	assert.True(t, decimal.NewFromInt(5).Equal(booking.EstimatedDistance))
	assert.False(t, booking.BookingTime.IsZero())
	require.NotNil(t, booking.Provider)
	assert.Equal(t, "Rapid", booking.Provider.Name)

	distance := decimal.RequireFromString("8")
	req.EstimatedDistanceKm = &distance
	booking, err = f.transport.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.00").Equal(booking.EstimatedFare), booking.EstimatedFare.String())

	negative := decimal.NewFromInt(-1)
	req.EstimatedDistanceKm = &negative
	_, err = f.transport.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestCreateBooking_RequiresAvailableProviderOfType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	busy := testutil.CreateProvider(t, f.db, "Busy", entity.TransportCab, false, "4.00")
	cab := testutil.CreateProvider(t, f.db, "Cab", entity.TransportCab, true, "4.00")

	_, err := f.transport.CreateBooking(ctx, newBookingRequest(patient.ID, busy.ID, entity.TransportCab))
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = f.transport.CreateBooking(ctx, newBookingRequest(patient.ID, cab.ID, entity.TransportAmbulance))
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = f.transport.CreateBooking(ctx, newBookingRequest(patient.ID, 999, entity.TransportCab))
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = f.transport.CreateBooking(ctx, newBookingRequest(999, cab.ID, entity.TransportCab))
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestUpdateBooking_WalksStatusChain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	provider := testutil.CreateProvider(t, f.db, "Rapid", entity.TransportAmbulance, true, "4.00")

	booking, err := f.transport.CreateBooking(ctx, newBookingRequest(patient.ID, provider.ID, entity.TransportAmbulance))
	require.NoError(t, err)

	_, err = f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{Status: strPtr("arrived")})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	fare := decimal.RequireFromString("130")
	_, err = f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{Status: strPtr("accepted"), ActualFare: &fare})
	assert.ErrorIs(t, err, ErrActualFareNotAllowed)

	accepted, err := f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{Status: strPtr("accepted")})
	require.NoError(t, err)
	assert.NotNil(t, accepted.AcceptedAt)
	assert.Nil(t, accepted.ArrivedAt)

	for _, status := range []string{"en_route", "arrived", "in_transit"} {
		_, err = f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{Status: strPtr(status)})
		require.NoError(t, err, status)
	}

	completed, err := f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{
		Status:     strPtr("completed"),
		ActualFare: &fare,
		Notes:      strPtr("smooth ride"),
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.NotNil(t, completed.ArrivedAt)
	assert.NotNil(t, completed.CompletedAt)
	assert.Nil(t, completed.CancelledAt)
	require.NotNil(t, completed.ActualFare)
	assert.True(t, fare.Equal(*completed.ActualFare))
	assert.Equal(t, "smooth ride", completed.Notes)

	_, err = f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{Status: strPtr("cancelled")})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateBooking_CancelAndTextFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	provider := testutil.CreateProvider(t, f.db, "Moto", entity.TransportMotorbike, true, "4.00")

	booking, err := f.transport.CreateBooking(ctx, newBookingRequest(patient.ID, provider.ID, entity.TransportMotorbike))
	require.NoError(t, err)

	updated, err := f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{PatientCondition: strPtr("stable")})
	require.NoError(t, err)
	assert.Equal(t, "pending", updated.Status)
	assert.Equal(t, "stable", updated.PatientCondition)

	cancelled, err := f.transport.UpdateBooking(ctx, booking.ID, &dto.UpdateBookingRequest{Status: strPtr("cancelled")})
	require.NoError(t, err)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = f.transport.UpdateBooking(ctx, 999, &dto.UpdateBookingRequest{Status: strPtr("accepted")})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	pending, err := f.transport.ListPendingBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Total)

	byPatient, err := f.transport.ListBookingsByPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, byPatient.Total)
}

func TestListAvailableProviders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	low := testutil.CreateProvider(t, f.db, "Low", entity.TransportAmbulance, true, "3.00")
	high := testutil.CreateProvider(t, f.db, "High", entity.TransportAmbulance, true, "4.90")
	testutil.CreateProvider(t, f.db, "Off", entity.TransportAmbulance, false, "5.00")
	testutil.CreateProvider(t, f.db, "Cab", entity.TransportCab, true, "5.00")

	_, err := f.transport.ListAvailableProviders(ctx, "")
	assert.ErrorIs(t, err, ErrTransportTypeRequired)

	_, err = f.transport.ListAvailableProviders(ctx, "helicopter")
	assert.ErrorIs(t, err, ErrInvalidTransportType)

	list, err := f.transport.ListAvailableProviders(ctx, "ambulance")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, high.ID, list.Providers[0].ID)
	assert.Equal(t, low.ID, list.Providers[1].ID)

	_, err = f.transport.UpdateProvider(ctx, high.ID, &dto.UpdateProviderRequest{IsAvailable: boolPtr(false)})
	require.NoError(t, err)

	list, err = f.transport.ListAvailableProviders(ctx, "ambulance")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, low.ID, list.Providers[0].ID)

	all, err := f.transport.ListProviders(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
}

func TestQuoteFare(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	provider := testutil.CreateProvider(t, f.db, "Rapid", entity.TransportCab, true, "4.00")

	distance := decimal.RequireFromString("2.4")
	quote, err := f.transport.QuoteFare(ctx, provider.ID, &distance)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("80.00").Equal(quote.EstimatedFare), quote.EstimatedFare.String())

	quote, err = f.transport.QuoteFare(ctx, provider.ID, nil)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("112.50").Equal(quote.EstimatedFare))

	_, err = f.transport.QuoteFare(ctx, 999, nil)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
