package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants
const (
	InvoiceDraft     = "DRAFT"
	InvoiceIssued    = "ISSUED"
	InvoicePaid      = "PAID"
	InvoiceCancelled = "CANCELLED"
)

// Invoice is the billing document generated from a completed booking.
type Invoice struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNo string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_no"`
	BookingID uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	Booking   *Booking        `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client    *User           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`   // Pre-tax amount
	VATAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"vat_amount"` // Computed from the estimate type's VAT rate
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`      // subtotal + vat_amount
	Status    string          `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	IssuedAt  *time.Time      `json:"issued_at"`
	Note      string          `gorm:"type:text" json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
