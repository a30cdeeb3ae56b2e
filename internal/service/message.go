package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

var (
	ErrContactMessageNotFound  = repository.ErrContactMessageNotFound
	ErrAccountRequestNotFound  = repository.ErrAccountRequestNotFound
	ErrInternalMessageNotFound = repository.ErrInternalMessageNotFound
	ErrRequestAlreadyProcessed = errors.New("account request already processed")
	ErrNotMessageReceiver      = errors.New("only the receiver can mark a message read")
	ErrNotMessageParty         = errors.New("only a participant can delete a message")
)

type MessageRepository interface {
	CreateContact(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	FindAllContacts(ctx context.Context) ([]domain.ContactMessage, error)
	FindContactByID(ctx context.Context, id uint) (domain.ContactMessage, error)
	UpdateContact(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	DeleteContact(ctx context.Context, id uint) error

	CreateAccountRequest(ctx context.Context, req domain.AccountRequest) (domain.AccountRequest, error)
	FindAllAccountRequests(ctx context.Context) ([]domain.AccountRequest, error)
	FindAccountRequestByID(ctx context.Context, id uint) (domain.AccountRequest, error)
	UpdateAccountRequest(ctx context.Context, req domain.AccountRequest) (domain.AccountRequest, error)
	DeleteAccountRequest(ctx context.Context, id uint) error

	CreateInternal(ctx context.Context, msg domain.InternalMessage) (domain.InternalMessage, error)
	FindInternalByID(ctx context.Context, id uint) (domain.InternalMessage, error)
	FindForUser(ctx context.Context, userID uint) ([]domain.InternalMessage, error)
	FindBetween(ctx context.Context, userID, otherID uint) ([]domain.InternalMessage, error)
	MarkThreadRead(ctx context.Context, senderID, receiverID uint) error
	MarkRead(ctx context.Context, id uint) (domain.InternalMessage, error)
	UnreadCount(ctx context.Context, receiverID, senderID uint) (int64, error)
	DeleteInternal(ctx context.Context, id uint) error
}

type AccountCreator interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type MessageService struct {
	repo  MessageRepository
	users AccountCreator
}

func NewMessageService(repo MessageRepository, users AccountCreator) *MessageService {
	return &MessageService{
		repo:  repo,
		users: users,
	}
}

func (s *MessageService) CreateContactMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	msg.Status = domain.ContactStatusNew

	created, err := s.repo.CreateContact(ctx, msg)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("s.repo.CreateContact -> %w", err)
	}

	return created, nil
}

func (s *MessageService) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	msgs, err := s.repo.FindAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllContacts -> %w", err)
	}

	return msgs, nil
}

func (s *MessageService) UpdateContactStatus(ctx context.Context, id uint, status string) (domain.ContactMessage, error) {
	msg, err := s.repo.FindContactByID(ctx, id)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("s.repo.FindContactByID -> %w", err)
	}

	msg.Status = status

	updated, err := s.repo.UpdateContact(ctx, msg)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("s.repo.UpdateContact -> %w", err)
	}

	return updated, nil
}

func (s *MessageService) DeleteContactMessage(ctx context.Context, id uint) error {
	if _, err := s.repo.FindContactByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindContactByID -> %w", err)
	}

	if err := s.repo.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteContact -> %w", err)
	}

	return nil
}

// CreateAccountRequest hashes the candidate password before it is
// stored; the plaintext never reaches the database.
func (s *MessageService) CreateAccountRequest(ctx context.Context, req domain.AccountRequest) (domain.AccountRequest, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AccountRequest{}, err
	}
	req.Password = string(hash)
	req.Status = domain.AccountRequestStatusPending

	created, err := s.repo.CreateAccountRequest(ctx, req)
	if err != nil {
		return domain.AccountRequest{}, fmt.Errorf("s.repo.CreateAccountRequest -> %w", err)
	}

	return created, nil
}

func (s *MessageService) ListAccountRequests(ctx context.Context) ([]domain.AccountRequest, error) {
	reqs, err := s.repo.FindAllAccountRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllAccountRequests -> %w", err)
	}

	return reqs, nil
}

// ApproveAccountRequest turns a pending request into a real account. The
// stored hash is copied as-is, so the password chosen at request time
// keeps working.
func (s *MessageService) ApproveAccountRequest(ctx context.Context, id uint) (domain.User, error) {
	req, err := s.repo.FindAccountRequestByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindAccountRequestByID -> %w", err)
	}

	if req.Status != domain.AccountRequestStatusPending {
		return domain.User{}, ErrRequestAlreadyProcessed
	}

	first, last := splitName(req.Name)
	user, err := s.users.Create(ctx, domain.User{
		Username:   usernameFromEmail(req.Email),
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  first,
		LastName:   last,
		IsActive:   true,
		DateJoined: time.Now(),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	req.Status = domain.AccountRequestStatusApproved
	if _, err = s.repo.UpdateAccountRequest(ctx, req); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateAccountRequest -> %w", err)
	}

	return user, nil
}

func (s *MessageService) RejectAccountRequest(ctx context.Context, id uint) (domain.AccountRequest, error) {
	req, err := s.repo.FindAccountRequestByID(ctx, id)
	if err != nil {
		return domain.AccountRequest{}, fmt.Errorf("s.repo.FindAccountRequestByID -> %w", err)
	}

	if req.Status != domain.AccountRequestStatusPending {
		return domain.AccountRequest{}, ErrRequestAlreadyProcessed
	}

	req.Status = domain.AccountRequestStatusRejected

	updated, err := s.repo.UpdateAccountRequest(ctx, req)
	if err != nil {
		return domain.AccountRequest{}, fmt.Errorf("s.repo.UpdateAccountRequest -> %w", err)
	}

	return updated, nil
}

func (s *MessageService) DeleteAccountRequest(ctx context.Context, id uint) error {
	if _, err := s.repo.FindAccountRequestByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindAccountRequestByID -> %w", err)
	}

	if err := s.repo.DeleteAccountRequest(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteAccountRequest -> %w", err)
	}

	return nil
}

func (s *MessageService) SendMessage(ctx context.Context, senderID uint, msg domain.InternalMessage) (domain.InternalMessage, error) {
	msg.Sender = senderID
	msg.Status = domain.MessageStatusUnread

	created, err := s.repo.CreateInternal(ctx, msg)
	if err != nil {
		return domain.InternalMessage{}, fmt.Errorf("s.repo.CreateInternal -> %w", err)
	}

	return created, nil
}

// Inbox returns every message the caller sent or received, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]domain.InternalMessage, error) {
	msgs, err := s.repo.FindForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindForUser -> %w", err)
	}

	return msgs, nil
}

// Conversations groups the caller's messages by thread, keeping the
// newest message of each thread plus the unread count owed to the
// caller by that counterpart.
func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	msgs, err := s.repo.FindForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindForUser -> %w", err)
	}

	latest := make(map[string]domain.InternalMessage)
	for _, m := range msgs {
		key := m.ConversationID()
		if cur, ok := latest[key]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			latest[key] = m
		}
	}

	conversations := make([]domain.Conversation, 0, len(latest))
	for _, m := range latest {
		otherID := m.Sender
		otherName := m.SenderName
		if otherID == userID {
			otherID = m.Receiver
			otherName = m.ReceiverName
		}

		unread, err := s.repo.UnreadCount(ctx, userID, otherID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.UnreadCount -> %w", err)
		}

		conversations = append(conversations, domain.Conversation{
			UserID:      otherID,
			UserName:    otherName,
			LastMessage: m,
			UnreadCount: unread,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})

	return conversations, nil
}

// Conversation marks the counterpart's messages read, then returns the
// thread oldest first. Opening a thread is what clears its unread badge.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uint) ([]domain.InternalMessage, error) {
	if err := s.repo.MarkThreadRead(ctx, otherID, userID); err != nil {
		return nil, fmt.Errorf("s.repo.MarkThreadRead -> %w", err)
	}

	msgs, err := s.repo.FindBetween(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBetween -> %w", err)
	}

	return msgs, nil
}

func (s *MessageService) MarkAsRead(ctx context.Context, userID, id uint) (domain.InternalMessage, error) {
	msg, err := s.repo.FindInternalByID(ctx, id)
	if err != nil {
		return domain.InternalMessage{}, fmt.Errorf("s.repo.FindInternalByID -> %w", err)
	}

	if msg.Receiver != userID {
		return domain.InternalMessage{}, ErrNotMessageReceiver
	}

	updated, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return domain.InternalMessage{}, fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return updated, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.UnreadCount(ctx, userID, 0)
	if err != nil {
		return 0, fmt.Errorf("s.repo.UnreadCount -> %w", err)
	}

	return count, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, userID, id uint) error {
	msg, err := s.repo.FindInternalByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindInternalByID -> %w", err)
	}

	if msg.Sender != userID && msg.Receiver != userID {
		return ErrNotMessageParty
	}

	if err = s.repo.DeleteInternal(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteInternal -> %w", err)
	}

	return nil
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], strings.Join(parts[1:], " ")
}
