package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationRequestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, DonationRequestPending.CanTransitionTo(DonationRequestApproved))
	assert.True(t, DonationRequestPending.CanTransitionTo(DonationRequestRejected))
	assert.True(t, DonationRequestApproved.CanTransitionTo(DonationRequestFulfilled))
	assert.False(t, DonationRequestPending.CanTransitionTo(DonationRequestFulfilled))
	assert.False(t, DonationRequestRejected.CanTransitionTo(DonationRequestApproved))
	assert.False(t, DonationRequestStatus("unknown").IsValid())
}

func TestJSON_ScanRoundTrip(t *testing.T) {
	var j JSON
	assert.NoError(t, j.Scan([]byte(`{"allergies":["penicillin"]}`)))
	assert.Equal(t, []interface{}{"penicillin"}, j["allergies"])

	assert.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	assert.Error(t, j.Scan(42))

	v, err := JSON{}.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
}
