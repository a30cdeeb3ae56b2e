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
	errRequestProcessed   = errors.New("cette demande a déjà été traitée")
	errNotMessageReceiver = errors.New("seul le destinataire peut marquer ce message comme lu")
	errNotMessageParty    = errors.New("vous ne participez pas à ce message")
	errInvalidMessageID   = errors.New("invalid message ID")
	errInvalidRequestID   = errors.New("invalid request ID")
	errMissingUserID      = errors.New("user_id query parameter is required")
)

type MessageService interface {
	CreateContactMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id uint, status string) (domain.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id uint) error

	CreateAccountRequest(ctx context.Context, req domain.AccountRequest) (domain.AccountRequest, error)
	ListAccountRequests(ctx context.Context) ([]domain.AccountRequest, error)
	ApproveAccountRequest(ctx context.Context, id uint) (domain.User, error)
	RejectAccountRequest(ctx context.Context, id uint) (domain.AccountRequest, error)
	DeleteAccountRequest(ctx context.Context, id uint) error

	SendMessage(ctx context.Context, senderID uint, msg domain.InternalMessage) (domain.InternalMessage, error)
	Inbox(ctx context.Context, userID uint) ([]domain.InternalMessage, error)
	Conversations(ctx context.Context, userID uint) ([]domain.Conversation, error)
	Conversation(ctx context.Context, userID, otherID uint) ([]domain.InternalMessage, error)
	MarkAsRead(ctx context.Context, userID, id uint) (domain.InternalMessage, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	DeleteMessage(ctx context.Context, userID, id uint) error
}

type MessageHandler struct {
	svc  MessageService
	uSvc UserService
	hub  *ChatHub
}

func NewMessageHandler(svc MessageService, uSvc UserService, hub *ChatHub) *MessageHandler {
	return &MessageHandler{
		svc:  svc,
		uSvc: uSvc,
		hub:  hub,
	}
}

// HandleCreateContactMessage godoc
// @Summary      Submit a contact message
// @Tags         messages
// @Produce      json
// @Param        request  body      request.ContactMessageRequest true "request body"
// @Success      201  {object}  domain.ContactMessage
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact-messages [post]
func (h *MessageHandler) HandleCreateContactMessage(ctx *gin.Context) {
	var req request.ContactMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	msg, err := h.svc.CreateContactMessage(ctx.Request.Context(), domain.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateContactMessage -> h.svc.CreateContactMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, msg)
}

// HandleListContactMessages godoc
// @Summary      List contact messages
// @Tags         messages
// @Produce      json
// @Success      200  {array}   domain.ContactMessage
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact-messages [get]
// @Security     BearerAuth
func (h *MessageHandler) HandleListContactMessages(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	msgs, err := h.svc.ListContactMessages(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListContactMessages -> h.svc.ListContactMessages -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, msgs)
}

// HandleUpdateContactStatus godoc
// @Summary      Update a contact message's status
// @Tags         messages
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Param        request    body      request.ContactStatusRequest true "request body"
// @Success      200  {object}  domain.ContactMessage
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact-messages/{messageID} [patch]
// @Security     BearerAuth
func (h *MessageHandler) HandleUpdateContactStatus(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	messageID, ok := parseMessageID(ctx)
	if !ok {
		return
	}

	var req request.ContactStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	msg, err := h.svc.UpdateContactStatus(ctx.Request.Context(), messageID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrContactMessageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contact message", "ID", messageID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateContactStatus -> h.svc.UpdateContactStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, msg)
}

// HandleDeleteContactMessage godoc
// @Summary      Delete a contact message
// @Tags         messages
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact-messages/{messageID} [delete]
// @Security     BearerAuth
func (h *MessageHandler) HandleDeleteContactMessage(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	messageID, ok := parseMessageID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteContactMessage(ctx.Request.Context(), messageID); err != nil {
		if errors.Is(err, service.ErrContactMessageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contact message", "ID", messageID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteContactMessage -> h.svc.DeleteContactMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateAccountRequest godoc
// @Summary      Request an account
// @Tags         account-requests
// @Produce      json
// @Param        request  body      request.AccountRequestRequest true "request body"
// @Success      201  {object}  domain.AccountRequest
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /account-requests [post]
func (h *MessageHandler) HandleCreateAccountRequest(ctx *gin.Context) {
	var req request.AccountRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateAccountRequest(ctx.Request.Context(), domain.AccountRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Reason:   req.Reason,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateAccountRequest -> h.svc.CreateAccountRequest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *MessageHandler) requireStaff(ctx *gin.Context) bool {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return false
	}

	if !service.Allowed(user, service.ResourceAccountRequests, service.ActionManage) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotStaff))
		return false
	}

	return true
}

// HandleListAccountRequests godoc
// @Summary      List account requests (staff)
// @Tags         account-requests
// @Produce      json
// @Success      200  {array}   domain.AccountRequest
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /account-requests [get]
// @Security     BearerAuth
func (h *MessageHandler) HandleListAccountRequests(ctx *gin.Context) {
	if !h.requireStaff(ctx) {
		return
	}

	reqs, err := h.svc.ListAccountRequests(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAccountRequests -> h.svc.ListAccountRequests -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reqs)
}

// HandleApproveAccountRequest godoc
// @Summary      Approve an account request (staff)
// @Description  Creates the user with the password chosen at request time.
// @Tags         account-requests
// @Produce      json
// @Param        requestID  path      int  true  "request ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /account-requests/{requestID}/approve [post]
// @Security     BearerAuth
func (h *MessageHandler) HandleApproveAccountRequest(ctx *gin.Context) {
	if !h.requireStaff(ctx) {
		return
	}

	requestID, ok := parseRequestID(ctx)
	if !ok {
		return
	}

	user, err := h.svc.ApproveAccountRequest(ctx.Request.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("account request", "ID", requestID))
		case errors.Is(err, service.ErrRequestAlreadyProcessed):
			response.RenderErr(ctx, response.ErrBadRequest(errRequestProcessed))
		case errors.Is(err, service.ErrUserExists):
			response.RenderErr(ctx, response.ErrBadRequest(errEmailTaken))
		default:
			err = fmt.Errorf("v1.HandleApproveAccountRequest -> h.svc.ApproveAccountRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleRejectAccountRequest godoc
// @Summary      Reject an account request (staff)
// @Tags         account-requests
// @Produce      json
// @Param        requestID  path      int  true  "request ID"
// @Success      200  {object}  domain.AccountRequest
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /account-requests/{requestID}/reject [post]
// @Security     BearerAuth
func (h *MessageHandler) HandleRejectAccountRequest(ctx *gin.Context) {
	if !h.requireStaff(ctx) {
		return
	}

	requestID, ok := parseRequestID(ctx)
	if !ok {
		return
	}

	rejected, err := h.svc.RejectAccountRequest(ctx.Request.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("account request", "ID", requestID))
		case errors.Is(err, service.ErrRequestAlreadyProcessed):
			response.RenderErr(ctx, response.ErrBadRequest(errRequestProcessed))
		default:
			err = fmt.Errorf("v1.HandleRejectAccountRequest -> h.svc.RejectAccountRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, rejected)
}

// HandleDeleteAccountRequest godoc
// @Summary      Delete an account request (staff)
// @Tags         account-requests
// @Produce      json
// @Param        requestID  path      int  true  "request ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /account-requests/{requestID} [delete]
// @Security     BearerAuth
func (h *MessageHandler) HandleDeleteAccountRequest(ctx *gin.Context) {
	if !h.requireStaff(ctx) {
		return
	}

	requestID, ok := parseRequestID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteAccountRequest(ctx.Request.Context(), requestID); err != nil {
		if errors.Is(err, service.ErrAccountRequestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("account request", "ID", requestID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteAccountRequest -> h.svc.DeleteAccountRequest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSendMessage godoc
// @Summary      Send an internal message
// @Tags         messages
// @Produce      json
// @Param        request  body      request.SendMessageRequest true "request body"
// @Success      201  {object}  domain.InternalMessage
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages [post]
// @Security     BearerAuth
func (h *MessageHandler) HandleSendMessage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	msg, err := h.svc.SendMessage(ctx.Request.Context(), user.ID, domain.InternalMessage{
		Receiver: req.Receiver,
		Subject:  req.Subject,
		Message:  req.Message,
		ReplyTo:  req.ReplyTo,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSendMessage -> h.svc.SendMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	// Push to the receiver's open websocket, if any.
	h.hub.Notify(msg)

	ctx.JSON(http.StatusCreated, msg)
}

// HandleInbox godoc
// @Summary      List the caller's messages
// @Tags         messages
// @Produce      json
// @Success      200  {array}   domain.InternalMessage
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages [get]
// @Security     BearerAuth
func (h *MessageHandler) HandleInbox(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	msgs, err := h.svc.Inbox(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleInbox -> h.svc.Inbox -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, msgs)
}

// HandleConversations godoc
// @Summary      List the caller's conversations
// @Description  One entry per counterpart, newest message first, with unread counts.
// @Tags         messages
// @Produce      json
// @Success      200  {array}   domain.Conversation
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/conversations [get]
// @Security     BearerAuth
func (h *MessageHandler) HandleConversations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conversations, err := h.svc.Conversations(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleConversations -> h.svc.Conversations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, conversations)
}

// HandleConversation godoc
// @Summary      Open a conversation with another user
// @Description  Marks the counterpart's messages read, then returns the thread oldest first.
// @Tags         messages
// @Produce      json
// @Param        user_id  query     int  true  "counterpart user ID"
// @Success      200  {array}   domain.InternalMessage
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/conversation [get]
// @Security     BearerAuth
func (h *MessageHandler) HandleConversation(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	otherID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil || otherID == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingUserID))
		return
	}

	msgs, err := h.svc.Conversation(ctx.Request.Context(), user.ID, uint(otherID))
	if err != nil {
		err = fmt.Errorf("v1.HandleConversation -> h.svc.Conversation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, msgs)
}

// HandleMarkAsRead godoc
// @Summary      Mark one received message as read
// @Tags         messages
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Success      200  {object}  domain.InternalMessage
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/{messageID}/mark_as_read [post]
// @Security     BearerAuth
func (h *MessageHandler) HandleMarkAsRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	messageID, ok := parseMessageID(ctx)
	if !ok {
		return
	}

	msg, err := h.svc.MarkAsRead(ctx.Request.Context(), user.ID, messageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternalMessageNotFound):
			response.RenderErr(ctx, response.ErrNotFound("message", "ID", messageID))
		case errors.Is(err, service.ErrNotMessageReceiver):
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotMessageReceiver))
		default:
			err = fmt.Errorf("v1.HandleMarkAsRead -> h.svc.MarkAsRead -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, msg)
}

// HandleUnreadCount godoc
// @Summary      Count the caller's unread messages
// @Tags         messages
// @Produce      json
// @Success      200  {object}  response.UnreadCountResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/unread_count [get]
// @Security     BearerAuth
func (h *MessageHandler) HandleUnreadCount(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.UnreadCount(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleUnreadCount -> h.svc.UnreadCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UnreadCountResponse{UnreadCount: count})
}

// HandleDeleteMessage godoc
// @Summary      Delete a message (participants only)
// @Tags         messages
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/{messageID} [delete]
// @Security     BearerAuth
func (h *MessageHandler) HandleDeleteMessage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	messageID, ok := parseMessageID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteMessage(ctx.Request.Context(), user.ID, messageID); err != nil {
		switch {
		case errors.Is(err, service.ErrInternalMessageNotFound):
			response.RenderErr(ctx, response.ErrNotFound("message", "ID", messageID))
		case errors.Is(err, service.ErrNotMessageParty):
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotMessageParty))
		default:
			err = fmt.Errorf("v1.HandleDeleteMessage -> h.svc.DeleteMessage -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseMessageID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("messageID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidMessageID))
		return 0, false
	}

	return uint(id), true
}

func parseRequestID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("requestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidRequestID))
		return 0, false
	}

	return uint(id), true
}
