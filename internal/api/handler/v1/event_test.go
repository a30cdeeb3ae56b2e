package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

type fakeEventService struct {
	registerErr         error
	lastIncludeInactive bool
}

func (f *fakeEventService) ListEvents(_ context.Context, includeInactive bool) ([]domain.Event, error) {
	f.lastIncludeInactive = includeInactive

	return []domain.Event{}, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id uint, includeInactive bool) (domain.Event, error) {
	f.lastIncludeInactive = includeInactive

	return domain.Event{ID: id, IsActive: true}, nil
}

func (f *fakeEventService) CreateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = 1

	return event, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	return event, nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, _ uint) error {
	return nil
}

func (f *fakeEventService) Register(_ context.Context, eventID, userID uint, notes string) (domain.EventRegistration, error) {
	if f.registerErr != nil {
		return domain.EventRegistration{}, f.registerErr
	}

	return domain.EventRegistration{ID: 1, EventID: eventID, UserID: userID, Notes: notes, Status: domain.RegistrationStatusPending}, nil
}

func (f *fakeEventService) Unregister(_ context.Context, _, _ uint) error {
	return nil
}

func (f *fakeEventService) EventRegistrations(_ context.Context, _ uint) ([]domain.EventRegistration, error) {
	return []domain.EventRegistration{}, nil
}

func (f *fakeEventService) MyRegistrations(_ context.Context, _ uint) ([]domain.EventRegistration, error) {
	return []domain.EventRegistration{}, nil
}

func (f *fakeEventService) UpdateRegistrationStatus(_ context.Context, _, registrationID uint, status string) (domain.EventRegistration, error) {
	return domain.EventRegistration{ID: registrationID, Status: status}, nil
}

func newEventRouter(svc *fakeEventService, callerID uint) *gin.Engine {
	member := domain.User{ID: 1, IsActive: true}
	staff := domain.User{ID: 2, IsActive: true, IsStaff: true}

	handler := NewEventHandler(svc, newFakeUserService(member, staff))

	router := gin.New()
	group := router.Group("/", asUser(callerID))
	group.GET("/events", handler.HandleListEvents)
	group.POST("/events/:eventID/register", handler.HandleRegister)
	group.GET("/events/:eventID/registrations", handler.HandleEventRegistrations)

	return router
}

func TestHandleListEventsInactiveVisibility(t *testing.T) {
	t.Run("anonymous sees active only", func(t *testing.T) {
		svc := &fakeEventService{}
		rec := doRequest(newEventRouter(svc, 0), http.MethodGet, "/events", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, svc.lastIncludeInactive)
	})

	t.Run("member sees active only", func(t *testing.T) {
		svc := &fakeEventService{}
		rec := doRequest(newEventRouter(svc, 1), http.MethodGet, "/events", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, svc.lastIncludeInactive)
	})

	t.Run("staff sees inactive too", func(t *testing.T) {
		svc := &fakeEventService{}
		rec := doRequest(newEventRouter(svc, 2), http.MethodGet, "/events", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.lastIncludeInactive)
	})
}

func TestHandleRegister(t *testing.T) {
	t.Run("success answers 201", func(t *testing.T) {
		rec := doRequest(newEventRouter(&fakeEventService{}, 1), http.MethodPost, "/events/3/register", nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("anonymous answers 401", func(t *testing.T) {
		rec := doRequest(newEventRouter(&fakeEventService{}, 0), http.MethodPost, "/events/3/register", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate answers 400", func(t *testing.T) {
		svc := &fakeEventService{registerErr: service.ErrAlreadyRegistered}
		rec := doRequest(newEventRouter(svc, 1), http.MethodPost, "/events/3/register", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "vous êtes déjà inscrit à cet événement", resp["error"])
	})

	t.Run("full event answers 400", func(t *testing.T) {
		svc := &fakeEventService{registerErr: service.ErrEventFull}
		rec := doRequest(newEventRouter(svc, 1), http.MethodPost, "/events/3/register", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cet événement est complet", resp["error"])
	})
}

func TestHandleEventRegistrationsStaffOnly(t *testing.T) {
	t.Run("member answers 403", func(t *testing.T) {
		rec := doRequest(newEventRouter(&fakeEventService{}, 1), http.MethodGet, "/events/3/registrations", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff answers 200", func(t *testing.T) {
		rec := doRequest(newEventRouter(&fakeEventService{}, 2), http.MethodGet, "/events/3/registrations", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
