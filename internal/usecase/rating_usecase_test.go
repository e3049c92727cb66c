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

// completedConsultation runs a consultation through the lifecycle and returns its id.
func completedConsultation(t *testing.T, f *fixture, patientID, doctorID int64) int64 {
	t.Helper()
	ctx := context.Background()

	created, err := f.consultations.CreateConsultation(ctx, newConsultationRequest(patientID, doctorID))
	require.NoError(t, err)
	_, err = f.consultations.AcceptConsultation(ctx, created.ID)
	require.NoError(t, err)
	_, err = f.consultations.CompleteConsultation(ctx, created.ID, &dto.CompleteConsultationRequest{Diagnosis: "ok"})
	require.NoError(t, err)
	return created.ID
}

func TestSubmitRating_RecomputesMean(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	doctor := testutil.CreateDoctor(t, f.db, "doc@example.com", true, true, "0")

	scores := []int{5, 4, 4}
	var last *dto.RatingResponse
	for _, score := range scores {
		id := completedConsultation(t, f, patient.ID, doctor.UserID)
		resp, err := f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{
			ConsultationID: id,
			PatientID:      patient.ID,
			DoctorID:       doctor.UserID,
			Rating:         score,
		})
		require.NoError(t, err)
		last = resp
	}

	assert.True(t, decimal.RequireFromString("4.33").Equal(last.DoctorRating), last.DoctorRating.String())
	assert.Equal(t, 3, last.DoctorTotalRatings)

	profile, err := f.doctors.GetDoctorProfile(ctx, doctor.UserID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.33").Equal(profile.Rating), profile.Rating.String())
	assert.Equal(t, 3, profile.TotalRatings)
}

func TestSubmitRating_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	other := testutil.CreateAccount(t, f.db, "other@example.com", entity.RolePatient, false)
	doctor := testutil.CreateDoctor(t, f.db, "doc@example.com", true, true, "0")

	pending, err := f.consultations.CreateConsultation(ctx, newConsultationRequest(patient.ID, doctor.UserID))
	require.NoError(t, err)
	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: pending.ID, PatientID: patient.ID, DoctorID: doctor.UserID, Rating: 5})
	assert.ErrorIs(t, err, ErrConsultationNotCompleted)

	id := completedConsultation(t, f, patient.ID, doctor.UserID)

	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: id, PatientID: other.ID, DoctorID: doctor.UserID, Rating: 5})
	assert.ErrorIs(t, err, ErrRatingMismatch)

	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: id, PatientID: patient.ID, DoctorID: doctor.UserID, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRatingScore)

	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: 999, PatientID: patient.ID, DoctorID: doctor.UserID, Rating: 5})
	assert.ErrorIs(t, err, ErrConsultationNotFound)

	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: id, PatientID: patient.ID, DoctorID: 999, Rating: 5})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: id, PatientID: patient.ID, DoctorID: doctor.UserID, Rating: 2})
	require.NoError(t, err)

	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: id, PatientID: patient.ID, DoctorID: doctor.UserID, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyRated)

	profile, err := f.doctors.GetDoctorProfile(ctx, doctor.UserID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(profile.Rating))
	assert.Equal(t, 1, profile.TotalRatings)
}

func TestSubmitRating_RefreshesAvailableList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patient := testutil.CreateAccount(t, f.db, "patient@example.com", entity.RolePatient, false)
	rated := testutil.CreateDoctor(t, f.db, "rated@example.com", true, true, "0")
	leader := testutil.CreateDoctor(t, f.db, "leader@example.com", true, true, "3.00")

	list, err := f.doctors.ListAvailableDoctors(ctx)
	require.NoError(t, err)
	require.Equal(t, leader.UserID, list.Doctors[0].UserID)

	id := completedConsultation(t, f, patient.ID, rated.UserID)
	_, err = f.ratings.SubmitRating(ctx, &dto.CreateRatingRequest{ConsultationID: id, PatientID: patient.ID, DoctorID: rated.UserID, Rating: 5})
	require.NoError(t, err)

	list, err = f.doctors.ListAvailableDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, rated.UserID, list.Doctors[0].UserID)
}
