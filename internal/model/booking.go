package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus enum constants
const (
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingAssigned   = "ASSIGNED"
	BookingInProgress = "IN_PROGRESS"
	BookingCompleted  = "COMPLETED"
	BookingCancelled  = "CANCELLED"
)

// EstimateType enum constants
const (
	EstimateTransfer  = "transfer"  // point-to-point trip
	EstimateProvision = "provision" // vehicle at disposal for a duration
)

// SegmentDirection enum constants
const (
	SegmentOutbound = "OUTBOUND"
	SegmentReturn   = "RETURN"
)

// Booking is a confirmed or pending trip reservation. Round-trip bookings
// carry two segments; the top-level pickup fields mirror the outbound leg.
type Booking struct {
	ID                  uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	Client              *User            `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	VehicleID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle             *Vehicle         `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Status              string           `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	EstimateType        string           `gorm:"type:varchar(20);not null;default:'transfer'" json:"estimate_type"`
	PickupAddress       string           `gorm:"type:text;not null" json:"pickup_address"`
	DropoffAddress      string           `gorm:"type:text;not null" json:"dropoff_address"`
	PickupLat           float64          `gorm:"type:decimal(10,7)" json:"pickup_lat"`
	PickupLon           float64          `gorm:"type:decimal(10,7)" json:"pickup_lon"`
	DropoffLat          float64          `gorm:"type:decimal(10,7)" json:"dropoff_lat"`
	DropoffLon          float64          `gorm:"type:decimal(10,7)" json:"dropoff_lon"`
	PickupAt            time.Time        `gorm:"not null;index" json:"pickup_at"`
	DistanceKm          decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"distance_km"`
	DurationMinutes     decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"duration_minutes"`
	StandardCost        decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"standard_cost"`
	FinalCost           decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"final_cost"`
	AppliedRules        string           `gorm:"type:jsonb" json:"applied_rules"` // serialized pricing trace
	PromoCodeID         *uuid.UUID       `gorm:"type:uuid" json:"promo_code_id"`
	PromoCode           *PromoCode       `gorm:"foreignKey:PromoCodeID" json:"promo_code,omitempty"`
	IsRoundTrip         bool             `gorm:"default:false" json:"is_round_trip"`
	Segments            []BookingSegment `gorm:"foreignKey:BookingID" json:"segments,omitempty"`
	RecurringTemplateID *uuid.UUID       `gorm:"type:uuid;index" json:"recurring_template_id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BookingSegment is one leg of a round-trip booking.
type BookingSegment struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	Direction       string          `gorm:"type:varchar(10);not null" json:"direction"` // OUTBOUND, RETURN
	PickupAddress   string          `gorm:"type:text;not null" json:"pickup_address"`
	DropoffAddress  string          `gorm:"type:text;not null" json:"dropoff_address"`
	PickupLat       float64         `gorm:"type:decimal(10,7)" json:"pickup_lat"`
	PickupLon       float64         `gorm:"type:decimal(10,7)" json:"pickup_lon"`
	DropoffLat      float64         `gorm:"type:decimal(10,7)" json:"dropoff_lat"`
	DropoffLon      float64         `gorm:"type:decimal(10,7)" json:"dropoff_lon"`
	PickupAt        time.Time       `gorm:"not null" json:"pickup_at"`
	DistanceKm      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"distance_km"`
	DurationMinutes decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"duration_minutes"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CanTransitionBooking reports whether a booking status change is allowed.
// Terminal states (COMPLETED, CANCELLED) have no outgoing transitions.
func CanTransitionBooking(from, to string) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingAssigned || to == BookingCancelled
	case BookingAssigned:
		return to == BookingInProgress || to == BookingConfirmed || to == BookingCancelled
	case BookingInProgress:
		return to == BookingCompleted || to == BookingCancelled
	default:
		return false
	}
}
