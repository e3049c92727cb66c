package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsultationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ConsultationStatus
		to   ConsultationStatus
		want bool
	}{
		{ConsultationPending, ConsultationActive, true},
		{ConsultationPending, ConsultationCancelled, true},
		{ConsultationPending, ConsultationCompleted, false},
		{ConsultationActive, ConsultationCompleted, true},
		{ConsultationActive, ConsultationCancelled, true},
		{ConsultationActive, ConsultationPending, false},
		{ConsultationCompleted, ConsultationCompleted, false},
		{ConsultationCompleted, ConsultationCancelled, false},
		{ConsultationCancelled, ConsultationActive, false},
		{ConsultationStatus("bogus"), ConsultationActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestConsultationEnums_IsValid(t *testing.T) {
	assert.True(t, ConsultationPending.IsValid())
	assert.False(t, ConsultationStatus("done").IsValid())
	assert.True(t, ConsultationEmergency.IsValid())
	assert.True(t, ConsultationRegular.IsValid())
	assert.False(t, ConsultationType("video").IsValid())
	assert.True(t, ConsultationCompleted.IsTerminal())
	assert.False(t, ConsultationActive.IsTerminal())
}
