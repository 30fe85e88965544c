package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateVehicle    = "CREATE_VEHICLE"
	ActionUpdateVehicle    = "UPDATE_VEHICLE"
	ActionDeleteVehicle    = "DELETE_VEHICLE"
	ActionCreateTariffRule = "CREATE_TARIFF_RULE"
	ActionUpdateTariffRule = "UPDATE_TARIFF_RULE"
	ActionDeleteTariffRule = "DELETE_TARIFF_RULE"
	ActionCreateVATRate    = "CREATE_VAT_RATE"
	ActionCreateBooking    = "CREATE_BOOKING"
	ActionUpdateBooking    = "UPDATE_BOOKING_STATUS"
	ActionRedeemPromoCode  = "REDEEM_PROMO_CODE"

	// Recurring booking actions
	ActionCreateRecurringTemplate   = "CREATE_RECURRING_TEMPLATE"
	ActionFinalizeRecurringBookings = "FINALIZE_RECURRING_BOOKINGS"
	ActionCancelRecurringTemplate   = "CANCEL_RECURRING_TEMPLATE"
	ActionCreateInvoice             = "CREATE_INVOICE"
	ActionPayInvoice                = "PAY_INVOICE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
