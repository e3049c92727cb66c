package repository

import (
	"testing"
	"time"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationRepository_UpdateStatusIsConditional(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewConsultationRepository()

	patient := testutil.CreateAccount(t, db, "patient@clinic.test", entity.RolePatient, true)
	doctor := testutil.CreateDoctor(t, db, "doctor@clinic.test", true, true, "0")

	c := &entity.Consultation{
		PatientID: patient.ID,
		DoctorID:  doctor.UserID,
		Status:    entity.ConsultationPending,
		Type:      entity.ConsultationRegular,
		Symptoms:  "headache",
	}
	require.NoError(t, repo.Create(db, c))
	require.NotZero(t, c.ID)

	now := time.Now()
	rows, err := repo.UpdateStatus(db, c.ID, entity.ConsultationPending, map[string]interface{}{
		"status":     entity.ConsultationActive,
		"started_at": now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// Second writer still expects pending and loses.
	rows, err = repo.UpdateStatus(db, c.ID, entity.ConsultationPending, map[string]interface{}{
		"status": entity.ConsultationCancelled,
	})
	require.NoError(t, err)
	assert.Zero(t, rows)

	got, err := repo.FindByID(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConsultationActive, got.Status)
	require.NotNil(t, got.StartedAt)
	require.NotNil(t, got.Patient)
	require.NotNil(t, got.Doctor)
	assert.Equal(t, "patient@clinic.test", got.Patient.Email)
	assert.Equal(t, "doctor@clinic.test", got.Doctor.Email)
}

func TestConsultationRepository_Lists(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewConsultationRepository()

	patient := testutil.CreateAccount(t, db, "patient@clinic.test", entity.RolePatient, true)
	d1 := testutil.CreateDoctor(t, db, "d1@clinic.test", true, true, "0")
	d2 := testutil.CreateDoctor(t, db, "d2@clinic.test", true, true, "0")

	for _, doctorID := range []int64{d1.UserID, d2.UserID, d1.UserID} {
		require.NoError(t, repo.Create(db, &entity.Consultation{
			PatientID: patient.ID,
			DoctorID:  doctorID,
			Status:    entity.ConsultationPending,
			Type:      entity.ConsultationEmergency,
			Symptoms:  "fever",
		}))
	}

	byPatient, err := repo.FindByPatientID(db, patient.ID)
	require.NoError(t, err)
	assert.Len(t, byPatient, 3)

	byDoctor, err := repo.FindByDoctorID(db, d1.UserID)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	pending, err := repo.FindByStatus(db, entity.ConsultationPending)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	missing, err := repo.FindByID(db, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
