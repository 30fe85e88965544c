package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType enum constants
const (
	NotifyBookingCreated   = "BOOKING_CREATED"
	NotifyBookingStatus    = "BOOKING_STATUS_CHANGED"
	NotifyBookingReminder  = "BOOKING_REMINDER"
	NotifyRecurringCreated = "RECURRING_BOOKINGS_CREATED"
	NotifyInvoiceIssued    = "INVOICE_ISSUED"
)

// Notification is a persisted per-user message, also pushed live over the
// WebSocket hub when the recipient is connected.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Type      string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Payload   string    `gorm:"type:jsonb" json:"payload"` // Serialized JSON context (booking id, costs...)
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
