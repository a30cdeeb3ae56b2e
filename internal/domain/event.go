package domain

import "time"

const (
	EventTypeConference   = "conference"
	EventTypeSeminar      = "seminar"
	EventTypeWorkshop     = "workshop"
	EventTypeMeeting      = "meeting"
	EventTypePresentation = "presentation"
	EventTypeOther        = "other"
)

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

func ValidRegistrationStatus(status string) bool {
	switch status {
	case RegistrationStatusPending, RegistrationStatusConfirmed, RegistrationStatusCancelled:
		return true
	}

	return false
}

type Event struct {
	ID              uint                `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	EventType       string              `json:"event_type"`
	Location        string              `json:"location"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	MaxParticipants *uint               `json:"max_participants"`
	IsActive        bool                `json:"is_active"`
	CreatedBy       uint                `json:"created_by"`
	Creator         User                `json:"-"`
	Registrations   []EventRegistration `json:"registrations"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// RegisteredCount counts confirmed registrations only; a pending
// registration does not consume capacity.
func (e Event) RegisteredCount() int {
	count := 0
	for _, r := range e.Registrations {
		if r.Status == RegistrationStatusConfirmed {
			count++
		}
	}

	return count
}

// IsFull is derived on read, never cached.
func (e Event) IsFull() bool {
	if e.MaxParticipants == nil {
		return false
	}

	return e.RegisteredCount() >= int(*e.MaxParticipants)
}

type EventRegistration struct {
	ID               uint      `json:"id"`
	EventID          uint      `json:"event"`
	UserID           uint      `json:"user"`
	User             User      `json:"-"`
	Status           string    `json:"status"`
	RegistrationDate time.Time `json:"registration_date"`
	Notes            string    `json:"notes"`
}
