package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

type fakeMessageRepo struct {
	contacts map[uint]domain.ContactMessage
	requests map[uint]domain.AccountRequest
	internal map[uint]domain.InternalMessage

	unreadByOther map[uint]int64
	threadReads   [][2]uint
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		contacts:      make(map[uint]domain.ContactMessage),
		requests:      make(map[uint]domain.AccountRequest),
		internal:      make(map[uint]domain.InternalMessage),
		unreadByOther: make(map[uint]int64),
	}
}

func (f *fakeMessageRepo) CreateContact(_ context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	msg.ID = uint(len(f.contacts) + 1)
	f.contacts[msg.ID] = msg

	return msg, nil
}

func (f *fakeMessageRepo) FindAllContacts(_ context.Context) ([]domain.ContactMessage, error) {
	msgs := make([]domain.ContactMessage, 0, len(f.contacts))
	for _, m := range f.contacts {
		msgs = append(msgs, m)
	}

	return msgs, nil
}

func (f *fakeMessageRepo) FindContactByID(_ context.Context, id uint) (domain.ContactMessage, error) {
	msg, ok := f.contacts[id]
	if !ok {
		return domain.ContactMessage{}, repository.ErrContactMessageNotFound
	}

	return msg, nil
}

func (f *fakeMessageRepo) UpdateContact(_ context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	f.contacts[msg.ID] = msg

	return msg, nil
}

func (f *fakeMessageRepo) DeleteContact(_ context.Context, id uint) error {
	delete(f.contacts, id)

	return nil
}

func (f *fakeMessageRepo) CreateAccountRequest(_ context.Context, req domain.AccountRequest) (domain.AccountRequest, error) {
	req.ID = uint(len(f.requests) + 1)
	f.requests[req.ID] = req

	return req, nil
}

func (f *fakeMessageRepo) FindAllAccountRequests(_ context.Context) ([]domain.AccountRequest, error) {
	reqs := make([]domain.AccountRequest, 0, len(f.requests))
	for _, r := range f.requests {
		reqs = append(reqs, r)
	}

	return reqs, nil
}

func (f *fakeMessageRepo) FindAccountRequestByID(_ context.Context, id uint) (domain.AccountRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return domain.AccountRequest{}, repository.ErrAccountRequestNotFound
	}

	return req, nil
}

func (f *fakeMessageRepo) UpdateAccountRequest(_ context.Context, req domain.AccountRequest) (domain.AccountRequest, error) {
	f.requests[req.ID] = req

	return req, nil
}

func (f *fakeMessageRepo) DeleteAccountRequest(_ context.Context, id uint) error {
	delete(f.requests, id)

	return nil
}

func (f *fakeMessageRepo) CreateInternal(_ context.Context, msg domain.InternalMessage) (domain.InternalMessage, error) {
	msg.ID = uint(len(f.internal) + 1)
	f.internal[msg.ID] = msg

	return msg, nil
}

func (f *fakeMessageRepo) FindInternalByID(_ context.Context, id uint) (domain.InternalMessage, error) {
	msg, ok := f.internal[id]
	if !ok {
		return domain.InternalMessage{}, repository.ErrInternalMessageNotFound
	}

	return msg, nil
}

func (f *fakeMessageRepo) FindForUser(_ context.Context, userID uint) ([]domain.InternalMessage, error) {
	msgs := make([]domain.InternalMessage, 0)
	for _, m := range f.internal {
		if m.Sender == userID || m.Receiver == userID {
			msgs = append(msgs, m)
		}
	}

	return msgs, nil
}

func (f *fakeMessageRepo) FindBetween(_ context.Context, userID, otherID uint) ([]domain.InternalMessage, error) {
	msgs := make([]domain.InternalMessage, 0)
	for _, m := range f.internal {
		if (m.Sender == userID && m.Receiver == otherID) || (m.Sender == otherID && m.Receiver == userID) {
			msgs = append(msgs, m)
		}
	}

	return msgs, nil
}

func (f *fakeMessageRepo) MarkThreadRead(_ context.Context, senderID, receiverID uint) error {
	f.threadReads = append(f.threadReads, [2]uint{senderID, receiverID})
	for id, m := range f.internal {
		if m.Sender == senderID && m.Receiver == receiverID {
			m.Status = domain.MessageStatusRead
			f.internal[id] = m
		}
	}

	return nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id uint) (domain.InternalMessage, error) {
	msg := f.internal[id]
	msg.Status = domain.MessageStatusRead
	f.internal[id] = msg

	return msg, nil
}

func (f *fakeMessageRepo) UnreadCount(_ context.Context, receiverID, senderID uint) (int64, error) {
	if senderID != 0 {
		return f.unreadByOther[senderID], nil
	}

	var total int64
	for _, n := range f.unreadByOther {
		total += n
	}

	return total, nil
}

func (f *fakeMessageRepo) DeleteInternal(_ context.Context, id uint) error {
	delete(f.internal, id)

	return nil
}

func TestMessageServiceCreateContactMessage(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewMessageService(repo, nil)

	created, err := svc.CreateContactMessage(context.Background(), domain.ContactMessage{
		Name:    "Jean Dupont",
		Email:   "jean@example.org",
		Message: "Bonjour",
		Status:  "replied", // client-sent status is ignored
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusNew, created.Status)
}

func TestMessageServiceCreateAccountRequestHashesPassword(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewMessageService(repo, nil)

	created, err := svc.CreateAccountRequest(context.Background(), domain.AccountRequest{
		Name:     "Marie Curie",
		Email:    "marie@lab.fr",
		Password: "motdepasse1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountRequestStatusPending, created.Status)
	assert.NotEqual(t, "motdepasse1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("motdepasse1")))
}

func TestMessageServiceApproveAccountRequest(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := newFakeMessageRepo()
	repo.requests[1] = domain.AccountRequest{
		ID:       1,
		Name:     "Marie Curie",
		Email:    "marie@lab.fr",
		Password: string(hash),
		Status:   domain.AccountRequestStatusPending,
	}

	users := &fakeAuthRepo{}
	svc := NewMessageService(repo, users)

	user, err := svc.ApproveAccountRequest(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "marie", user.Username)
	assert.Equal(t, "Marie", user.FirstName)
	assert.Equal(t, "Curie", user.LastName)
	assert.True(t, user.IsActive)
	// the hash chosen at request time keeps working
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.created[0].Password), []byte("motdepasse1")))
	assert.Equal(t, domain.AccountRequestStatusApproved, repo.requests[1].Status)
}

func TestMessageServiceApproveAccountRequestAlreadyProcessed(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.requests[1] = domain.AccountRequest{ID: 1, Status: domain.AccountRequestStatusRejected}
	svc := NewMessageService(repo, &fakeAuthRepo{})

	_, err := svc.ApproveAccountRequest(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRequestAlreadyProcessed)
}

func TestMessageServiceRejectAccountRequest(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.requests[1] = domain.AccountRequest{ID: 1, Status: domain.AccountRequestStatusPending}
	svc := NewMessageService(repo, nil)

	rejected, err := svc.RejectAccountRequest(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountRequestStatusRejected, rejected.Status)

	_, err = svc.RejectAccountRequest(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRequestAlreadyProcessed)
}

func TestMessageServiceSendMessage(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewMessageService(repo, nil)

	sent, err := svc.SendMessage(context.Background(), 3, domain.InternalMessage{
		Sender:   99, // client-sent sender is overwritten
		Receiver: 5,
		Message:  "salut",
		Status:   domain.MessageStatusRead,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), sent.Sender)
	assert.Equal(t, domain.MessageStatusUnread, sent.Status)
}

func TestMessageServiceConversations(t *testing.T) {
	now := time.Now()
	repo := newFakeMessageRepo()
	// two threads for user 1: with user 2 (two messages) and user 3 (one)
	repo.internal[1] = domain.InternalMessage{
		ID: 1, Sender: 1, Receiver: 2, ReceiverName: "Paul", Message: "premier",
		CreatedAt: now.Add(-2 * time.Hour),
	}
	repo.internal[2] = domain.InternalMessage{
		ID: 2, Sender: 2, Receiver: 1, SenderName: "Paul", Message: "dernier",
		CreatedAt: now.Add(-time.Minute),
	}
	repo.internal[3] = domain.InternalMessage{
		ID: 3, Sender: 3, Receiver: 1, SenderName: "Anne", Message: "coucou",
		CreatedAt: now.Add(-time.Hour),
	}
	repo.unreadByOther[2] = 1
	repo.unreadByOther[3] = 2

	svc := NewMessageService(repo, nil)

	conversations, err := svc.Conversations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// newest thread first, keyed by the counterpart
	assert.Equal(t, uint(2), conversations[0].UserID)
	assert.Equal(t, "Paul", conversations[0].UserName)
	assert.Equal(t, "dernier", conversations[0].LastMessage.Message)
	assert.Equal(t, int64(1), conversations[0].UnreadCount)

	assert.Equal(t, uint(3), conversations[1].UserID)
	assert.Equal(t, "Anne", conversations[1].UserName)
	assert.Equal(t, int64(2), conversations[1].UnreadCount)
}

func TestMessageServiceConversationMarksThreadRead(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.internal[1] = domain.InternalMessage{ID: 1, Sender: 2, Receiver: 1, Status: domain.MessageStatusUnread}
	svc := NewMessageService(repo, nil)

	msgs, err := svc.Conversation(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	// only the counterpart's messages to the caller get marked
	assert.Equal(t, [][2]uint{{2, 1}}, repo.threadReads)
	assert.Equal(t, domain.MessageStatusRead, repo.internal[1].Status)
}

func TestMessageServiceMarkAsRead(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.internal[1] = domain.InternalMessage{ID: 1, Sender: 2, Receiver: 1, Status: domain.MessageStatusUnread}
	svc := NewMessageService(repo, nil)

	_, err := svc.MarkAsRead(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrNotMessageReceiver)

	msg, err := svc.MarkAsRead(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageStatusRead, msg.Status)
}

func TestMessageServiceDeleteMessage(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.internal[1] = domain.InternalMessage{ID: 1, Sender: 2, Receiver: 1}
	svc := NewMessageService(repo, nil)

	err := svc.DeleteMessage(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrNotMessageParty)

	require.NoError(t, svc.DeleteMessage(context.Background(), 2, 1))
	assert.Empty(t, repo.internal)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		first, last string
	}{
		{name: "two parts", in: "Marie Curie", first: "Marie", last: "Curie"},
		{name: "three parts", in: "Jean de Dieu", first: "Jean", last: "de Dieu"},
		{name: "single part", in: "Marie", first: "Marie", last: ""},
		{name: "empty", in: "", first: "", last: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
