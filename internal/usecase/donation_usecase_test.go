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

func TestDonations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.donations.CreateDonation(ctx, &dto.CreateDonationRequest{DonorName: "Ann", Amount: decimal.RequireFromString("25.50")})
	require.NoError(t, err)
	anon, err := f.donations.CreateDonation(ctx, &dto.CreateDonationRequest{DonorName: "Hidden", Amount: decimal.RequireFromString("10"), IsAnonymous: true})
	require.NoError(t, err)
	assert.Empty(t, anon.DonorName)

	stats, err := f.donations.DonationStats(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("35.50").Equal(stats.Total), stats.Total.String())
	assert.Equal(t, int64(2), stats.Count)

	list, err := f.donations.ListDonations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestDonationRequestLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)

	_, err := f.donations.CreateDonationRequest(ctx, &dto.CreateDonationRequestRequest{PatientID: 999, Amount: decimal.NewFromInt(100), Purpose: "surgery"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	request, err := f.donations.CreateDonationRequest(ctx, &dto.CreateDonationRequestRequest{PatientID: patient.ID, Amount: decimal.NewFromInt(100), Purpose: "surgery"})
	require.NoError(t, err)
	assert.Equal(t, "pending", request.Status)

	_, err = f.donations.UpdateDonationRequestStatus(ctx, request.ID, &dto.UpdateDonationRequestStatusRequest{Status: "fulfilled"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	approved, err := f.donations.UpdateDonationRequestStatus(ctx, request.ID, &dto.UpdateDonationRequestStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	fulfilled, err := f.donations.UpdateDonationRequestStatus(ctx, request.ID, &dto.UpdateDonationRequestStatusRequest{Status: "fulfilled"})
	require.NoError(t, err)
	assert.Equal(t, "fulfilled", fulfilled.Status)

	_, err = f.donations.UpdateDonationRequestStatus(ctx, 999, &dto.UpdateDonationRequestStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrDonationRequestNotFound)

	requests, err := f.donations.ListDonationRequests(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, requests.Total)
	require.NotNil(t, requests.Requests[0].Patient)
}
