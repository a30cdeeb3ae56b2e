package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

type fakeEventRepo struct {
	events map[uint]domain.Event

	registerErr   error
	registrations []domain.EventRegistration
}

func (f *fakeEventRepo) FindAll(_ context.Context, includeInactive bool) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		if e.IsActive || includeInactive {
			events = append(events, e)
		}
	}

	return events, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint, includeInactive bool) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok || (!event.IsActive && !includeInactive) {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = uint(len(f.events) + 1)
	if f.events == nil {
		f.events = make(map[uint]domain.Event)
	}
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uint) error {
	delete(f.events, id)

	return nil
}

func (f *fakeEventRepo) Register(_ context.Context, eventID, userID uint, notes string) (domain.EventRegistration, error) {
	if f.registerErr != nil {
		return domain.EventRegistration{}, f.registerErr
	}

	reg := domain.EventRegistration{
		ID:      uint(len(f.registrations) + 1),
		EventID: eventID,
		UserID:  userID,
		Status:  domain.RegistrationStatusConfirmed,
		Notes:   notes,
	}
	f.registrations = append(f.registrations, reg)

	return reg, nil
}

func (f *fakeEventRepo) Unregister(_ context.Context, eventID, userID uint) error {
	for i, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID {
			f.registrations = append(f.registrations[:i], f.registrations[i+1:]...)

			return nil
		}
	}

	return repository.ErrRegistrationNotFound
}

func (f *fakeEventRepo) RegistrationsByEvent(_ context.Context, eventID uint) ([]domain.EventRegistration, error) {
	regs := make([]domain.EventRegistration, 0)
	for _, r := range f.registrations {
		if r.EventID == eventID {
			regs = append(regs, r)
		}
	}

	return regs, nil
}

func (f *fakeEventRepo) RegistrationsByUser(_ context.Context, userID uint) ([]domain.EventRegistration, error) {
	regs := make([]domain.EventRegistration, 0)
	for _, r := range f.registrations {
		if r.UserID == userID {
			regs = append(regs, r)
		}
	}

	return regs, nil
}

func (f *fakeEventRepo) UpdateRegistrationStatus(_ context.Context, eventID, registrationID uint, status string) (domain.EventRegistration, error) {
	for i, r := range f.registrations {
		if r.EventID == eventID && r.ID == registrationID {
			f.registrations[i].Status = status

			return f.registrations[i], nil
		}
	}

	return domain.EventRegistration{}, repository.ErrRegistrationNotFound
}

func TestEventServiceCreateDefaults(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), domain.Event{Title: "Séminaire"})
	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeOther, created.EventType)
	assert.True(t, created.IsActive)
}

func TestEventServiceUpdatePreservesCreator(t *testing.T) {
	repo := &fakeEventRepo{events: map[uint]domain.Event{
		1: {ID: 1, Title: "Ancien", CreatedBy: 7, IsActive: false},
	}}
	svc := NewEventService(repo)

	updated, err := svc.UpdateEvent(context.Background(), domain.Event{ID: 1, Title: "Nouveau", CreatedBy: 99})
	require.NoError(t, err)
	assert.Equal(t, uint(7), updated.CreatedBy)
}

func TestEventServiceRegister(t *testing.T) {
	repo := &fakeEventRepo{events: map[uint]domain.Event{
		1: {ID: 1, IsActive: true},
		2: {ID: 2, IsActive: false},
	}}
	svc := NewEventService(repo)

	t.Run("success", func(t *testing.T) {
		reg, err := svc.Register(context.Background(), 1, 5, "végétarien")
		require.NoError(t, err)
		assert.Equal(t, uint(5), reg.UserID)
		assert.Equal(t, "végétarien", reg.Notes)
	})

	t.Run("inactive event hidden", func(t *testing.T) {
		_, err := svc.Register(context.Background(), 2, 5, "")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("duplicate surfaces conflict", func(t *testing.T) {
		repo.registerErr = repository.ErrAlreadyRegistered
		_, err := svc.Register(context.Background(), 1, 5, "")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("full event surfaces conflict", func(t *testing.T) {
		repo.registerErr = repository.ErrEventFull
		_, err := svc.Register(context.Background(), 1, 6, "")
		assert.ErrorIs(t, err, ErrEventFull)
	})
}

func TestEventServiceUnregister(t *testing.T) {
	repo := &fakeEventRepo{events: map[uint]domain.Event{1: {ID: 1, IsActive: true}}}
	svc := NewEventService(repo)

	_, err := svc.Register(context.Background(), 1, 5, "")
	require.NoError(t, err)

	require.NoError(t, svc.Unregister(context.Background(), 1, 5))
	assert.ErrorIs(t, svc.Unregister(context.Background(), 1, 5), ErrRegistrationNotFound)
}

func TestEventServiceUpdateRegistrationStatus(t *testing.T) {
	repo := &fakeEventRepo{events: map[uint]domain.Event{1: {ID: 1, IsActive: true}}}
	svc := NewEventService(repo)

	reg, err := svc.Register(context.Background(), 1, 5, "")
	require.NoError(t, err)

	_, err = svc.UpdateRegistrationStatus(context.Background(), 1, reg.ID, "waitlisted")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := svc.UpdateRegistrationStatus(context.Background(), 1, reg.ID, domain.RegistrationStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusCancelled, updated.Status)
}
