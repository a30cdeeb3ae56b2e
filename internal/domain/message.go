package domain

import (
	"fmt"
	"time"
)

const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

const (
	AccountRequestStatusPending  = "pending"
	AccountRequestStatusApproved = "approved"
	AccountRequestStatusRejected = "rejected"
)

const (
	MessageStatusUnread = "unread"
	MessageStatusRead   = "read"
)

type ContactMessage struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountRequest struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never plaintext
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type InternalMessage struct {
	ID        uint      `json:"id"`
	Sender    uint      `json:"sender"`
	Receiver  uint      `json:"receiver"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	ReplyTo   *uint     `json:"reply_to"`
	CreatedAt time.Time `json:"created_at"`

	SenderName   string `json:"sender_name"`
	ReceiverName string `json:"receiver_name"`
}

// ConversationID derives the symmetric thread key; a two-party thread
// has exactly one id regardless of direction.
func (m InternalMessage) ConversationID() string {
	return ConversationID(m.Sender, m.Receiver)
}

func ConversationID(a, b uint) string {
	if a > b {
		a, b = b, a
	}

	return fmt.Sprintf("conv_%d_%d", a, b)
}

// Conversation summarizes one thread in the caller's mailbox listing.
type Conversation struct {
	UserID      uint            `json:"user_id"`
	UserName    string          `json:"user_name"`
	LastMessage InternalMessage `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}
