package response

import "github.com/chahin-fh/laboissimlocal/internal/domain"

// EventResponse adds the derived capacity fields and, for authenticated
// callers, their own registration.
type EventResponse struct {
	domain.Event
	RegisteredCount  int                   `json:"registered_count"`
	IsFull           bool                  `json:"is_full"`
	CreatedByName    string                `json:"created_by_name"`
	UserRegistration *RegistrationResponse `json:"user_registration"`
}

type RegistrationResponse struct {
	ID               uint   `json:"id"`
	EventID          uint   `json:"event"`
	UserID           uint   `json:"user"`
	UserName         string `json:"user_name"`
	UserEmail        string `json:"user_email"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registration_date"`
	Notes            string `json:"notes"`
}

func NewEventResponse(event domain.Event, callerID uint) EventResponse {
	resp := EventResponse{
		Event:           event,
		RegisteredCount: event.RegisteredCount(),
		IsFull:          event.IsFull(),
		CreatedByName:   event.Creator.FullName(),
	}

	if callerID != 0 {
		for _, reg := range event.Registrations {
			if reg.UserID == callerID {
				r := NewRegistrationResponse(reg)
				resp.UserRegistration = &r
				break
			}
		}
	}

	return resp
}

func NewEventsResponse(events []domain.Event, callerID uint) []EventResponse {
	resp := make([]EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, NewEventResponse(event, callerID))
	}

	return resp
}

func NewRegistrationResponse(reg domain.EventRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:               reg.ID,
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		UserName:         reg.User.FullName(),
		UserEmail:        reg.User.Email,
		Status:           reg.Status,
		RegistrationDate: reg.RegistrationDate.Format("2006-01-02T15:04:05Z07:00"),
		Notes:            reg.Notes,
	}
}

func NewRegistrationsResponse(regs []domain.EventRegistration) []RegistrationResponse {
	resp := make([]RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, NewRegistrationResponse(reg))
	}

	return resp
}
