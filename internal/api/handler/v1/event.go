package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/request"
	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

var (
	errAlreadyRegistered = errors.New("vous êtes déjà inscrit à cet événement")
	errEventFull         = errors.New("cet événement est complet")
	errNotRegistered     = errors.New("vous n'êtes pas inscrit à cet événement")
	errInvalidEventID    = errors.New("invalid event ID")
)

type EventService interface {
	ListEvents(ctx context.Context, includeInactive bool) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uint, includeInactive bool) (domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint, notes string) (domain.EventRegistration, error)
	Unregister(ctx context.Context, eventID, userID uint) error
	EventRegistrations(ctx context.Context, eventID uint) ([]domain.EventRegistration, error)
	MyRegistrations(ctx context.Context, userID uint) ([]domain.EventRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, eventID, registrationID uint, status string) (domain.EventRegistration, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// optionalCaller resolves the caller when a token is present; anonymous
// callers come back as the zero user.
func (h *EventHandler) optionalCaller(ctx *gin.Context) domain.User {
	if callerID(ctx) == 0 {
		return domain.User{}
	}

	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}
	}

	return user
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Inactive events are visible to staff only.
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventResponse
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	caller := h.optionalCaller(ctx)
	includeInactive := service.Allowed(caller, service.ResourceInactiveEvents, service.ActionRead)

	events, err := h.svc.ListEvents(ctx.Request.Context(), includeInactive)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventsResponse(events, caller.ID))
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200  {object}  response.EventResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	caller := h.optionalCaller(ctx)
	includeInactive := service.Allowed(caller, service.ResourceInactiveEvents, service.ActionRead)

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID, includeInactive)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponse(event, caller.ID))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request  body      request.CreateEventRequest true "request body"
// @Success      201  {object}  response.EventResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		Location:        req.Location,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       user.ID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewEventResponse(event, user.ID))
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request  body      request.UpdateEventRequest true "request body"
// @Success      200  {object}  response.EventResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event := domain.Event{
		ID:              eventID,
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		Location:        req.Location,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		IsActive:        true,
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	updated, err := h.svc.UpdateEvent(ctx.Request.Context(), event)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponse(updated, user.ID))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Registration starts pending; duplicates and full events answer 400.
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request  body      request.RegisterRequest false "request body"
// @Success      201  {object}  response.RegistrationResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security     BearerAuth
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	var req request.RegisterRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	reg, err := h.svc.Register(ctx.Request.Context(), eventID, user.ID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrBadRequest(errAlreadyRegistered))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrBadRequest(errEventFull))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewRegistrationResponse(reg))
}

// HandleUnregister godoc
// @Summary      Cancel the caller's registration
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/unregister [post]
// @Security     BearerAuth
func (h *EventHandler) HandleUnregister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	if err := h.svc.Unregister(ctx.Request.Context(), eventID, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(errNotRegistered))
		default:
			err = fmt.Errorf("v1.HandleUnregister -> h.svc.Unregister -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "inscription annulée"})
}

// HandleEventRegistrations godoc
// @Summary      List registrations of an event (staff)
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200  {array}   response.RegistrationResponse
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/registrations [get]
// @Security     BearerAuth
func (h *EventHandler) HandleEventRegistrations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !service.Allowed(user, service.ResourceEventRoster, service.ActionRead) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotStaff))
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	regs, err := h.svc.EventRegistrations(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleEventRegistrations -> h.svc.EventRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewRegistrationsResponse(regs))
}

// HandleUpdateRegistrationStatus godoc
// @Summary      Update a registration's status (staff)
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request  body      request.UpdateRegistrationStatusRequest true "request body"
// @Success      200  {object}  response.RegistrationResponse
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/update_registration_status [patch]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateRegistrationStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !service.Allowed(user, service.ResourceEventRoster, service.ActionManage) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotStaff))
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	var req request.UpdateRegistrationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reg, err := h.svc.UpdateRegistrationStatus(ctx.Request.Context(), eventID, req.RegistrationID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatus))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", req.RegistrationID))
		default:
			err = fmt.Errorf("v1.HandleUpdateRegistrationStatus -> h.svc.UpdateRegistrationStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewRegistrationResponse(reg))
}

// HandleMyRegistrations godoc
// @Summary      List the caller's event registrations
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.RegistrationResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /event-registrations [get]
// @Security     BearerAuth
func (h *EventHandler) HandleMyRegistrations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	regs, err := h.svc.MyRegistrations(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyRegistrations -> h.svc.MyRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewRegistrationsResponse(regs))
}

func parseEventID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidEventID))
		return 0, false
	}

	return uint(id), true
}
