package repository

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
)

var (
	ErrEventNotFound        = dao.ErrEventNotFound
	ErrEventFull            = dao.ErrEventFull
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
)

type EventDAO interface {
	FindAll(ctx context.Context, includeInactive bool) ([]dao.Event, error)
	FindByID(ctx context.Context, id uint, includeInactive bool) (dao.Event, error)
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint, notes string) (dao.EventRegistration, error)
	Unregister(ctx context.Context, eventID, userID uint) error
	RegistrationsByEvent(ctx context.Context, eventID uint) ([]dao.EventRegistration, error)
	RegistrationsByUser(ctx context.Context, userID uint) ([]dao.EventRegistration, error)
	FindRegistrationByID(ctx context.Context, id uint) (dao.EventRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, eventID, registrationID uint, status string) (dao.EventRegistration, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) FindAll(ctx context.Context, includeInactive bool) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, eventToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint, includeInactive bool) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id, includeInactive)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventToDomain(found), nil
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, eventToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) Register(ctx context.Context, eventID, userID uint, notes string) (domain.EventRegistration, error) {
	created, err := r.dao.Register(ctx, eventID, userID, notes)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return registrationToDomain(created), nil
}

func (r *EventRepository) Unregister(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Unregister(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Unregister -> %w", err)
	}

	return nil
}

func (r *EventRepository) RegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.EventRegistration, error) {
	found, err := r.dao.RegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.RegistrationsByEvent -> %w", err)
	}

	return registrationsToDomain(found), nil
}

func (r *EventRepository) RegistrationsByUser(ctx context.Context, userID uint) ([]domain.EventRegistration, error) {
	found, err := r.dao.RegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.RegistrationsByUser -> %w", err)
	}

	return registrationsToDomain(found), nil
}

func (r *EventRepository) UpdateRegistrationStatus(ctx context.Context, eventID, registrationID uint, status string) (domain.EventRegistration, error) {
	updated, err := r.dao.UpdateRegistrationStatus(ctx, eventID, registrationID, status)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.UpdateRegistrationStatus -> %w", err)
	}

	return registrationToDomain(updated), nil
}

func eventToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		EventType:       e.EventType,
		Location:        e.Location,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		MaxParticipants: e.MaxParticipants,
		IsActive:        e.IsActive,
		CreatedByID:     e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
}

func eventToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		EventType:       e.EventType,
		Location:        e.Location,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		MaxParticipants: e.MaxParticipants,
		IsActive:        e.IsActive,
		CreatedBy:       e.CreatedByID,
		Creator:         userToDomain(e.CreatedBy),
		Registrations:   registrationsToDomain(e.Registrations),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func registrationToDomain(r dao.EventRegistration) domain.EventRegistration {
	return domain.EventRegistration{
		ID:               r.ID,
		EventID:          r.EventID,
		UserID:           r.UserID,
		User:             userToDomain(r.User),
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
		Notes:            r.Notes,
	}
}

func registrationsToDomain(regs []dao.EventRegistration) []domain.EventRegistration {
	result := make([]domain.EventRegistration, 0, len(regs))
	for _, r := range regs {
		result = append(result, registrationToDomain(r))
	}

	return result
}
