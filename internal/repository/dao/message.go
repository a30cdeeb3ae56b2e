package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrContactMessageNotFound  = errors.New("contact message not found")
	ErrAccountRequestNotFound  = errors.New("account request not found")
	ErrInternalMessageNotFound = errors.New("internal message not found")
)

type ContactMessage struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Email    string `gorm:"not null"`
	Subject  string `gorm:"not null"`
	Category string
	Message  string `gorm:"not null"`
	Status   string `gorm:"not null;default:new"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

type AccountRequest struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Email    string `gorm:"not null"`
	Password string `gorm:"not null"` // bcrypt hash
	Reason   string
	Status   string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

type InternalMessage struct {
	ID uint `gorm:"primaryKey"`

	SenderID   uint `gorm:"not null;index"`
	Sender     User `gorm:"foreignKey:SenderID"`
	ReceiverID uint `gorm:"not null;index"`
	Receiver   User `gorm:"foreignKey:ReceiverID"`

	Subject string `gorm:"not null"`
	Message string `gorm:"not null"`
	Status  string `gorm:"not null;default:unread"`
	ReplyTo *uint

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{
		db: db,
	}
}

func (d *MessageDAO) InsertContact(ctx context.Context, msg ContactMessage) (ContactMessage, error) {
	result := d.db.WithContext(ctx).Create(&msg)
	if result.Error != nil {
		return ContactMessage{}, result.Error
	}

	return msg, nil
}

func (d *MessageDAO) FindAllContacts(ctx context.Context) ([]ContactMessage, error) {
	var msgs []ContactMessage

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&msgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return msgs, nil
}

func (d *MessageDAO) FindContactByID(ctx context.Context, id uint) (ContactMessage, error) {
	var msg ContactMessage

	result := d.db.WithContext(ctx).First(&msg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ContactMessage{}, ErrContactMessageNotFound
		}

		return ContactMessage{}, result.Error
	}

	return msg, nil
}

func (d *MessageDAO) UpdateContact(ctx context.Context, msg ContactMessage) (ContactMessage, error) {
	result := d.db.WithContext(ctx).Save(&msg)
	if result.Error != nil {
		return ContactMessage{}, result.Error
	}

	return msg, nil
}

func (d *MessageDAO) DeleteContact(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactMessageNotFound
	}

	return nil
}

func (d *MessageDAO) InsertAccountRequest(ctx context.Context, req AccountRequest) (AccountRequest, error) {
	result := d.db.WithContext(ctx).Create(&req)
	if result.Error != nil {
		return AccountRequest{}, result.Error
	}

	return req, nil
}

func (d *MessageDAO) FindAllAccountRequests(ctx context.Context) ([]AccountRequest, error) {
	var reqs []AccountRequest

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&reqs)
	if result.Error != nil {
		return nil, result.Error
	}

	return reqs, nil
}

func (d *MessageDAO) FindAccountRequestByID(ctx context.Context, id uint) (AccountRequest, error) {
	var req AccountRequest

	result := d.db.WithContext(ctx).First(&req, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AccountRequest{}, ErrAccountRequestNotFound
		}

		return AccountRequest{}, result.Error
	}

	return req, nil
}

func (d *MessageDAO) UpdateAccountRequest(ctx context.Context, req AccountRequest) (AccountRequest, error) {
	result := d.db.WithContext(ctx).Save(&req)
	if result.Error != nil {
		return AccountRequest{}, result.Error
	}

	return req, nil
}

func (d *MessageDAO) DeleteAccountRequest(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&AccountRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountRequestNotFound
	}

	return nil
}

func (d *MessageDAO) InsertInternal(ctx context.Context, msg InternalMessage) (InternalMessage, error) {
	result := d.db.WithContext(ctx).Create(&msg)
	if result.Error != nil {
		return InternalMessage{}, result.Error
	}

	return d.FindInternalByID(ctx, msg.ID)
}

func (d *MessageDAO) FindInternalByID(ctx context.Context, id uint) (InternalMessage, error) {
	var msg InternalMessage

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(&msg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return InternalMessage{}, ErrInternalMessageNotFound
		}

		return InternalMessage{}, result.Error
	}

	return msg, nil
}

// FindForUser lists the user's mailbox, both directions, newest first.
func (d *MessageDAO) FindForUser(ctx context.Context, userID uint) ([]InternalMessage, error) {
	var msgs []InternalMessage

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&msgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return msgs, nil
}

// FindBetween returns the full thread between two users, oldest first.
func (d *MessageDAO) FindBetween(ctx context.Context, userID, otherID uint) ([]InternalMessage, error) {
	var msgs []InternalMessage

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID,
		).
		Order("created_at ASC").
		Find(&msgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return msgs, nil
}

// MarkThreadRead marks unread messages from sender to receiver as read.
func (d *MessageDAO) MarkThreadRead(ctx context.Context, senderID, receiverID uint) error {
	return d.db.WithContext(ctx).Model(&InternalMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, "unread").
		Update("status", "read").Error
}

func (d *MessageDAO) MarkRead(ctx context.Context, id uint) (InternalMessage, error) {
	result := d.db.WithContext(ctx).Model(&InternalMessage{}).
		Where("id = ?", id).
		Update("status", "read")
	if result.Error != nil {
		return InternalMessage{}, result.Error
	}
	if result.RowsAffected == 0 {
		return InternalMessage{}, ErrInternalMessageNotFound
	}

	return d.FindInternalByID(ctx, id)
}

func (d *MessageDAO) UnreadCount(ctx context.Context, receiverID uint, senderID uint) (int64, error) {
	tx := d.db.WithContext(ctx).Model(&InternalMessage{}).
		Where("receiver_id = ? AND status = ?", receiverID, "unread")
	if senderID != 0 {
		tx = tx.Where("sender_id = ?", senderID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (d *MessageDAO) DeleteInternal(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&InternalMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInternalMessageNotFound
	}

	return nil
}
