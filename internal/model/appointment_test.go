package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusWaiting, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusScheduled, AppointmentStatusFollowUp, true},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, false},
		{AppointmentStatusWaiting, AppointmentStatusCompleted, true},
		{AppointmentStatusWaiting, AppointmentStatusCancelled, true},
		{AppointmentStatusWaiting, AppointmentStatusNoShow, true},
		{AppointmentStatusWaiting, AppointmentStatusFollowUp, true},
		{AppointmentStatusWaiting, AppointmentStatusScheduled, false},
		{AppointmentStatusCompleted, AppointmentStatusWaiting, false},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusNoShow, AppointmentStatusWaiting, false},
		{AppointmentStatusFollowUp, AppointmentStatusCompleted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
