package repository

import (
	"context"
	"fmt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
)

var (
	ErrContactMessageNotFound  = dao.ErrContactMessageNotFound
	ErrAccountRequestNotFound  = dao.ErrAccountRequestNotFound
	ErrInternalMessageNotFound = dao.ErrInternalMessageNotFound
)

type MessageDAO interface {
	InsertContact(ctx context.Context, msg dao.ContactMessage) (dao.ContactMessage, error)
	FindAllContacts(ctx context.Context) ([]dao.ContactMessage, error)
	FindContactByID(ctx context.Context, id uint) (dao.ContactMessage, error)
	UpdateContact(ctx context.Context, msg dao.ContactMessage) (dao.ContactMessage, error)
	DeleteContact(ctx context.Context, id uint) error

	InsertAccountRequest(ctx context.Context, req dao.AccountRequest) (dao.AccountRequest, error)
	FindAllAccountRequests(ctx context.Context) ([]dao.AccountRequest, error)
	FindAccountRequestByID(ctx context.Context, id uint) (dao.AccountRequest, error)
	UpdateAccountRequest(ctx context.Context, req dao.AccountRequest) (dao.AccountRequest, error)
	DeleteAccountRequest(ctx context.Context, id uint) error

	InsertInternal(ctx context.Context, msg dao.InternalMessage) (dao.InternalMessage, error)
	FindInternalByID(ctx context.Context, id uint) (dao.InternalMessage, error)
	FindForUser(ctx context.Context, userID uint) ([]dao.InternalMessage, error)
	FindBetween(ctx context.Context, userID, otherID uint) ([]dao.InternalMessage, error)
	MarkThreadRead(ctx context.Context, senderID, receiverID uint) error
	MarkRead(ctx context.Context, id uint) (dao.InternalMessage, error)
	UnreadCount(ctx context.Context, receiverID, senderID uint) (int64, error)
	DeleteInternal(ctx context.Context, id uint) error
}

type MessageRepository struct {
	dao MessageDAO
}

func NewMessageRepository(dao MessageDAO) *MessageRepository {
	return &MessageRepository{
		dao: dao,
	}
}

func (r *MessageRepository) CreateContact(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	created, err := r.dao.InsertContact(ctx, dao.ContactMessage{
		Name:     msg.Name,
		Email:    msg.Email,
		Subject:  msg.Subject,
		Category: msg.Category,
		Message:  msg.Message,
		Status:   domain.ContactStatusNew,
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("r.dao.InsertContact -> %w", err)
	}

	return contactToDomain(created), nil
}

func (r *MessageRepository) FindAllContacts(ctx context.Context) ([]domain.ContactMessage, error) {
	found, err := r.dao.FindAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllContacts -> %w", err)
	}

	msgs := make([]domain.ContactMessage, 0, len(found))
	for _, m := range found {
		msgs = append(msgs, contactToDomain(m))
	}

	return msgs, nil
}

func (r *MessageRepository) FindContactByID(ctx context.Context, id uint) (domain.ContactMessage, error) {
	found, err := r.dao.FindContactByID(ctx, id)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("r.dao.FindContactByID -> %w", err)
	}

	return contactToDomain(found), nil
}

func (r *MessageRepository) UpdateContact(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	updated, err := r.dao.UpdateContact(ctx, dao.ContactMessage{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Category:  msg.Category,
		Message:   msg.Message,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("r.dao.UpdateContact -> %w", err)
	}

	return contactToDomain(updated), nil
}

func (r *MessageRepository) DeleteContact(ctx context.Context, id uint) error {
	if err := r.dao.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteContact -> %w", err)
	}

	return nil
}

func (r *MessageRepository) CreateAccountRequest(ctx context.Context, req domain.AccountRequest) (domain.AccountRequest, error) {
	created, err := r.dao.InsertAccountRequest(ctx, dao.AccountRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Reason:   req.Reason,
		Status:   domain.AccountRequestStatusPending,
	})
	if err != nil {
		return domain.AccountRequest{}, fmt.Errorf("r.dao.InsertAccountRequest -> %w", err)
	}

	return accountRequestToDomain(created), nil
}

func (r *MessageRepository) FindAllAccountRequests(ctx context.Context) ([]domain.AccountRequest, error) {
	found, err := r.dao.FindAllAccountRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllAccountRequests -> %w", err)
	}

	reqs := make([]domain.AccountRequest, 0, len(found))
	for _, req := range found {
		reqs = append(reqs, accountRequestToDomain(req))
	}

	return reqs, nil
}

func (r *MessageRepository) FindAccountRequestByID(ctx context.Context, id uint) (domain.AccountRequest, error) {
	found, err := r.dao.FindAccountRequestByID(ctx, id)
	if err != nil {
		return domain.AccountRequest{}, fmt.Errorf("r.dao.FindAccountRequestByID -> %w", err)
	}

	return accountRequestToDomain(found), nil
}

func (r *MessageRepository) UpdateAccountRequest(ctx context.Context, req domain.AccountRequest) (domain.AccountRequest, error) {
	updated, err := r.dao.UpdateAccountRequest(ctx, dao.AccountRequest{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Reason:    req.Reason,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return domain.AccountRequest{}, fmt.Errorf("r.dao.UpdateAccountRequest -> %w", err)
	}

	return accountRequestToDomain(updated), nil
}

func (r *MessageRepository) DeleteAccountRequest(ctx context.Context, id uint) error {
	if err := r.dao.DeleteAccountRequest(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteAccountRequest -> %w", err)
	}

	return nil
}

func (r *MessageRepository) CreateInternal(ctx context.Context, msg domain.InternalMessage) (domain.InternalMessage, error) {
	created, err := r.dao.InsertInternal(ctx, dao.InternalMessage{
		SenderID:   msg.Sender,
		ReceiverID: msg.Receiver,
		Subject:    msg.Subject,
		Message:    msg.Message,
		Status:     domain.MessageStatusUnread,
		ReplyTo:    msg.ReplyTo,
	})
	if err != nil {
		return domain.InternalMessage{}, fmt.Errorf("r.dao.InsertInternal -> %w", err)
	}

	return internalToDomain(created), nil
}

func (r *MessageRepository) FindInternalByID(ctx context.Context, id uint) (domain.InternalMessage, error) {
	found, err := r.dao.FindInternalByID(ctx, id)
	if err != nil {
		return domain.InternalMessage{}, fmt.Errorf("r.dao.FindInternalByID -> %w", err)
	}

	return internalToDomain(found), nil
}

func (r *MessageRepository) FindForUser(ctx context.Context, userID uint) ([]domain.InternalMessage, error) {
	found, err := r.dao.FindForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindForUser -> %w", err)
	}

	return internalsToDomain(found), nil
}

func (r *MessageRepository) FindBetween(ctx context.Context, userID, otherID uint) ([]domain.InternalMessage, error) {
	found, err := r.dao.FindBetween(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBetween -> %w", err)
	}

	return internalsToDomain(found), nil
}

func (r *MessageRepository) MarkThreadRead(ctx context.Context, senderID, receiverID uint) error {
	if err := r.dao.MarkThreadRead(ctx, senderID, receiverID); err != nil {
		return fmt.Errorf("r.dao.MarkThreadRead -> %w", err)
	}

	return nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id uint) (domain.InternalMessage, error) {
	updated, err := r.dao.MarkRead(ctx, id)
	if err != nil {
		return domain.InternalMessage{}, fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return internalToDomain(updated), nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context, receiverID, senderID uint) (int64, error) {
	count, err := r.dao.UnreadCount(ctx, receiverID, senderID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.UnreadCount -> %w", err)
	}

	return count, nil
}

func (r *MessageRepository) DeleteInternal(ctx context.Context, id uint) error {
	if err := r.dao.DeleteInternal(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteInternal -> %w", err)
	}

	return nil
}

func contactToDomain(m dao.ContactMessage) domain.ContactMessage {
	return domain.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Category:  m.Category,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

func accountRequestToDomain(r dao.AccountRequest) domain.AccountRequest {
	return domain.AccountRequest{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Reason:    r.Reason,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func internalToDomain(m dao.InternalMessage) domain.InternalMessage {
	return domain.InternalMessage{
		ID:           m.ID,
		Sender:       m.SenderID,
		Receiver:     m.ReceiverID,
		Subject:      m.Subject,
		Message:      m.Message,
		Status:       m.Status,
		ReplyTo:      m.ReplyTo,
		CreatedAt:    m.CreatedAt,
		SenderName:   m.Sender.Username,
		ReceiverName: m.Receiver.Username,
	}
}

func internalsToDomain(msgs []dao.InternalMessage) []domain.InternalMessage {
	result := make([]domain.InternalMessage, 0, len(msgs))
	for _, m := range msgs {
		result = append(result, internalToDomain(m))
	}

	return result
}
