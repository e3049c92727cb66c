package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type consultationInput struct {
	PatientID int64  `json:"patientId" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,oneof=emergency regular"`
	Symptoms  string `json:"symptoms" validate:"required,min=3"`
	Rating    int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

type fareInput struct {
	BaseFare decimal.Decimal  `json:"baseFare" validate:"gte=0"`
	Amount   decimal.Decimal  `json:"amount" validate:"gt=0"`
	Actual   *decimal.Decimal `json:"actualFare" validate:"omitempty,gte=0"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(consultationInput{Type: "video", Symptoms: "ok", Rating: 9})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "patientId is required", errs["patientId"])
	assert.Equal(t, "type must be one of: emergency, regular", errs["type"])
	assert.Equal(t, "symptoms must be at least 3 characters", errs["symptoms"])
	assert.Equal(t, "rating must be at most 5", errs["rating"])
}

func TestValidate_Decimal(t *testing.T) {
	v := NewValidator()

	negative := decimal.RequireFromString("-1")
	err := v.Validate(fareInput{
		BaseFare: decimal.RequireFromString("-0.01"),
		Amount:   decimal.Zero,
		Actual:   &negative,
	})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Contains(t, errs, "baseFare")
	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "actualFare")

	assert.NoError(t, v.Validate(fareInput{
		BaseFare: decimal.RequireFromString("10.00"),
		Amount:   decimal.RequireFromString("0.01"),
	}))
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(consultationInput{PatientID: 1, Type: "regular", Symptoms: "cough"}))
}
