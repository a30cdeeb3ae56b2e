package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestEventRegisteredCount(t *testing.T) {
	tests := []struct {
		name          string
		registrations []EventRegistration
		expected      int
	}{
		{
			name:     "no registrations",
			expected: 0,
		},
		{
			name: "only confirmed count",
			registrations: []EventRegistration{
				{Status: RegistrationStatusConfirmed},
				{Status: RegistrationStatusPending},
				{Status: RegistrationStatusConfirmed},
				{Status: RegistrationStatusCancelled},
			},
			expected: 2,
		},
		{
			name: "pending consumes no capacity",
			registrations: []EventRegistration{
				{Status: RegistrationStatusPending},
				{Status: RegistrationStatusPending},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := Event{Registrations: tt.registrations}
			assert.Equal(t, tt.expected, event.RegisteredCount())
		})
	}
}

func TestEventIsFull(t *testing.T) {
	confirmed := []EventRegistration{
		{Status: RegistrationStatusConfirmed},
		{Status: RegistrationStatusConfirmed},
	}

	tests := []struct {
		name     string
		event    Event
		expected bool
	}{
		{
			name:     "unlimited capacity never fills",
			event:    Event{MaxParticipants: nil, Registrations: confirmed},
			expected: false,
		},
		{
			name:     "below capacity",
			event:    Event{MaxParticipants: uintPtr(3), Registrations: confirmed},
			expected: false,
		},
		{
			name:     "at capacity",
			event:    Event{MaxParticipants: uintPtr(2), Registrations: confirmed},
			expected: true,
		},
		{
			name: "pending registrations do not fill",
			event: Event{MaxParticipants: uintPtr(1), Registrations: []EventRegistration{
				{Status: RegistrationStatusPending},
			}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.IsFull())
		})
	}
}

func TestValidRegistrationStatus(t *testing.T) {
	assert.True(t, ValidRegistrationStatus(RegistrationStatusPending))
	assert.True(t, ValidRegistrationStatus(RegistrationStatusConfirmed))
	assert.True(t, ValidRegistrationStatus(RegistrationStatusCancelled))
	assert.False(t, ValidRegistrationStatus("waitlisted"))
	assert.False(t, ValidRegistrationStatus(""))
}
