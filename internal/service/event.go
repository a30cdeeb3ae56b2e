package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrEventFull            = repository.ErrEventFull
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrInvalidStatus        = errors.New("invalid registration status")
)

type EventRepository interface {
	FindAll(ctx context.Context, includeInactive bool) ([]domain.Event, error)
	FindByID(ctx context.Context, id uint, includeInactive bool) (domain.Event, error)
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint, notes string) (domain.EventRegistration, error)
	Unregister(ctx context.Context, eventID, userID uint) error
	RegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.EventRegistration, error)
	RegistrationsByUser(ctx context.Context, userID uint) ([]domain.EventRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, eventID, registrationID uint, status string) (domain.EventRegistration, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

// ListEvents hides inactive events from non-staff callers.
func (s *EventService) ListEvents(ctx context.Context, includeInactive bool) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint, includeInactive bool) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id, includeInactive)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.EventType == "" {
		event.EventType = domain.EventTypeOther
	}
	event.IsActive = true

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	existing, err := s.repo.FindByID(ctx, event.ID, true)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event.CreatedBy = existing.CreatedBy
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id, true); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Register signs the caller up for an active event. Duplicate and
// capacity checks run inside one transaction in the repository so two
// concurrent calls cannot both take the last seat.
func (s *EventService) Register(ctx context.Context, eventID, userID uint, notes string) (domain.EventRegistration, error) {
	if _, err := s.repo.FindByID(ctx, eventID, false); err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	reg, err := s.repo.Register(ctx, eventID, userID, notes)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return reg, nil
}

func (s *EventService) Unregister(ctx context.Context, eventID, userID uint) error {
	if _, err := s.repo.FindByID(ctx, eventID, false); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.Unregister(ctx, eventID, userID); err != nil {
		return fmt.Errorf("s.repo.Unregister -> %w", err)
	}

	return nil
}

func (s *EventService) EventRegistrations(ctx context.Context, eventID uint) ([]domain.EventRegistration, error) {
	if _, err := s.repo.FindByID(ctx, eventID, true); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	regs, err := s.repo.RegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.RegistrationsByEvent -> %w", err)
	}

	return regs, nil
}

func (s *EventService) MyRegistrations(ctx context.Context, userID uint) ([]domain.EventRegistration, error) {
	regs, err := s.repo.RegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.RegistrationsByUser -> %w", err)
	}

	return regs, nil
}

func (s *EventService) UpdateRegistrationStatus(ctx context.Context, eventID, registrationID uint, status string) (domain.EventRegistration, error) {
	if !domain.ValidRegistrationStatus(status) {
		return domain.EventRegistration{}, ErrInvalidStatus
	}

	if _, err := s.repo.FindByID(ctx, eventID, true); err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	reg, err := s.repo.UpdateRegistrationStatus(ctx, eventID, registrationID, status)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.UpdateRegistrationStatus -> %w", err)
	}

	return reg, nil
}
