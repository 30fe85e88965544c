package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AvailabilityType enum constants
const (
	AvailabilityAlways   = "always_available"
	AvailabilityOnDemand = "on_demand"
)

// Vehicle represents a bookable chauffeur-driven vehicle with its pricing grid.
// On-demand vehicles carry no computed tariff at estimation time — the price is
// negotiated per request.
type Vehicle struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	AvailabilityType string          `gorm:"type:varchar(30);not null;default:'always_available'" json:"availability_type"` // always_available, on_demand
	Seats            int             `gorm:"not null;default:4" json:"seats"`
	BookingFee       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"booking_fee"`
	DeliveryFee      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_fee"`       // per km, charged for the approach and return legs
	PricePerKm       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_per_km"`
	PricePerDuration decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_per_duration"` // per hour
	DefaultFee       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"default_fee"`        // minimum charge floor
	DistanceToBaseKm decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"distance_to_base_km"`
	Active           bool            `gorm:"default:true" json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// VATRate stores the VAT percentage applied per estimate type (transfer,
// provision...). Rate is a fraction, e.g. 0.10 = 10%.
type VATRate struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EstimateType string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"estimate_type"`
	Rate         decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
