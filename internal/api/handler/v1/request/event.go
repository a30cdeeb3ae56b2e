package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

var errEndBeforeStart = errors.New("la date de fin doit être postérieure à la date de début")

type CreateEventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventType       string    `json:"event_type"`
	Location        string    `json:"location"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants *uint     `json:"max_participants"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.EventType, validation.In(
			domain.EventTypeConference,
			domain.EventTypeSeminar,
			domain.EventTypeWorkshop,
			domain.EventTypeMeeting,
			domain.EventTypePresentation,
			domain.EventTypeOther,
		)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.EndDate.Before(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

type UpdateEventRequest struct {
	CreateEventRequest
	IsActive *bool `json:"is_active"`
}

type RegisterRequest struct {
	Notes string `json:"notes"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}

type UpdateRegistrationStatusRequest struct {
	RegistrationID uint   `json:"registration_id"`
	Status         string `json:"status"`
}

func (req *UpdateRegistrationStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegistrationID, validation.Required),
		validation.Field(&req.Status, validation.Required, validation.In(
			domain.RegistrationStatusPending,
			domain.RegistrationStatusConfirmed,
			domain.RegistrationStatusCancelled,
		)),
	)
}
