package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    QueueStatus
		to      QueueStatus
		allowed bool
	}{
		{QueueStatusWaiting, QueueStatusCalled, true},
		{QueueStatusWaiting, QueueStatusNoShow, true},
		{QueueStatusWaiting, QueueStatusInProgress, false},
		{QueueStatusWaiting, QueueStatusCompleted, false},
		{QueueStatusCalled, QueueStatusInProgress, true},
		{QueueStatusCalled, QueueStatusNoShow, true},
		{QueueStatusCalled, QueueStatusWaiting, false},
		{QueueStatusInProgress, QueueStatusCompleted, true},
		{QueueStatusInProgress, QueueStatusNoShow, false},
		{QueueStatusCompleted, QueueStatusWaiting, false},
		{QueueStatusNoShow, QueueStatusCalled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
