package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventFull            = errors.New("event is full")
	ErrAlreadyRegistered    = errors.New("already registered for event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	EventType   string    `gorm:"not null;default:other"`
	Location    string    `gorm:"not null"`
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     time.Time `gorm:"not null"`

	MaxParticipants *uint
	IsActive        bool `gorm:"not null;default:true"`

	CreatedByID uint `gorm:"not null"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID"`

	Registrations []EventRegistration `gorm:"foreignKey:EventID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventRegistration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;uniqueIndex:idx_event_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_user"`
	User    User `gorm:"foreignKey:UserID"`

	Status           string    `gorm:"not null;default:pending"`
	RegistrationDate time.Time `gorm:"autoCreateTime"`
	Notes            string
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) preloaded(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Registrations").
		Preload("Registrations.User").
		Preload("Registrations.User.Profile")
}

// FindAll returns active events; staff callers also see inactive ones.
func (d *EventDAO) FindAll(ctx context.Context, includeInactive bool) ([]Event, error) {
	var events []Event

	tx := d.preloaded(ctx)
	if !includeInactive {
		tx = tx.Where("is_active = ?", true)
	}

	result := tx.Order("start_date DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint, includeInactive bool) (Event, error) {
	var event Event

	tx := d.preloaded(ctx)
	if !includeInactive {
		tx = tx.Where("is_active = ?", true)
	}

	result := tx.First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Omit("Registrations", "CreatedBy").Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID, true)
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Omit("Registrations", "CreatedBy").Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID, true)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Select("Registrations").Delete(&Event{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Register is a single conditional insert: the event row is locked, the
// confirmed count rechecked and the registration created inside one
// transaction, so capacity cannot be oversold by concurrent requests.
// The (event_id, user_id) unique index backstops the duplicate check.
func (d *EventDAO) Register(ctx context.Context, eventID, userID uint, notes string) (EventRegistration, error) {
	var registration EventRegistration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return result.Error
		}

		var existing EventRegistration
		result = tx.First(&existing, "event_id = ? AND user_id = ?", eventID, userID)
		if result.Error == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if event.MaxParticipants != nil {
			var confirmed int64
			result = tx.Model(&EventRegistration{}).
				Where("event_id = ? AND status = ?", eventID, "confirmed").
				Count(&confirmed)
			if result.Error != nil {
				return result.Error
			}

			if confirmed >= int64(*event.MaxParticipants) {
				return ErrEventFull
			}
		}

		registration = EventRegistration{
			EventID: eventID,
			UserID:  userID,
			Notes:   notes,
		}

		return tx.Create(&registration).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return EventRegistration{}, ErrAlreadyRegistered
		}

		return EventRegistration{}, err
	}

	return d.FindRegistrationByID(ctx, registration.ID)
}

func (d *EventDAO) Unregister(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

func (d *EventDAO) RegistrationsByEvent(ctx context.Context, eventID uint) ([]EventRegistration, error) {
	var registrations []EventRegistration

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("event_id = ?", eventID).
		Order("registration_date DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *EventDAO) RegistrationsByUser(ctx context.Context, userID uint) ([]EventRegistration, error) {
	var registrations []EventRegistration

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("user_id = ?", userID).
		Order("registration_date DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *EventDAO) FindRegistrationByID(ctx context.Context, id uint) (EventRegistration, error) {
	var registration EventRegistration

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventRegistration{}, ErrRegistrationNotFound
		}

		return EventRegistration{}, result.Error
	}

	return registration, nil
}

func (d *EventDAO) UpdateRegistrationStatus(ctx context.Context, eventID, registrationID uint, status string) (EventRegistration, error) {
	result := d.db.WithContext(ctx).Model(&EventRegistration{}).
		Where("id = ? AND event_id = ?", registrationID, eventID).
		Update("status", status)
	if result.Error != nil {
		return EventRegistration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventRegistration{}, ErrRegistrationNotFound
	}

	return d.FindRegistrationByID(ctx, registrationID)
}
