package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RuleType enum constants
const (
	RuleTypeAdjustment = "adjustment"
	RuleTypePackage    = "package"
	RuleTypePromoCode  = "promo_code"
)

// AdjustmentType enum constants
const (
	AdjustmentDiscount = "discount"
	AdjustmentIncrease = "increase"
)

// PackageType enum constants
const (
	PackageClassic = "classic"
	PackageRadius  = "radius"
)

// HourWindow is an inclusive "HH:MM" time-of-day range.
type HourWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TariffRule attaches a pricing modifier to a vehicle with time, geography and
// client-visibility restrictions. Exactly one of the payload references
// (adjustment, package, promo code) must be populated, matching RuleType; rows
// violating that are skipped when loaded into the pricing engine.
type TariffRule struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle         *Vehicle       `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	RuleType        string         `gorm:"type:varchar(20);not null;index" json:"rule_type"` // adjustment, package, promo_code
	StartDate       *time.Time     `json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	DaysOfWeek      []string       `gorm:"serializer:json;type:jsonb" json:"days_of_week"`    // lower-case weekday names, empty = no restriction
	SpecificHours   []HourWindow   `gorm:"serializer:json;type:jsonb" json:"specific_hours"`  // empty = no restriction
	ApplicationDate *time.Time     `gorm:"type:date" json:"application_date"`                 // rule applies on this calendar date only
	Active          bool           `gorm:"default:true" json:"active"`
	Priority        int            `gorm:"not null;default:1" json:"priority"`
	AvailableToAll  bool           `gorm:"default:false" json:"available_to_all"`
	SpecificClients []uuid.UUID    `gorm:"serializer:json;type:jsonb" json:"specific_clients"`
	ExcludedClients []uuid.UUID    `gorm:"serializer:json;type:jsonb" json:"excluded_clients"`
	AdjustmentID    *uuid.UUID     `gorm:"type:uuid" json:"adjustment_id"`
	Adjustment      *Adjustment    `gorm:"foreignKey:AdjustmentID" json:"adjustment,omitempty"`
	PackageID       *uuid.UUID     `gorm:"type:uuid" json:"package_id"`
	Package         *TariffPackage `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	PromoCodeID     *uuid.UUID     `gorm:"type:uuid" json:"promo_code_id"`
	PromoCode       *PromoCode     `gorm:"foreignKey:PromoCodeID" json:"promo_code,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Adjustment raises or lowers the running cost by a percentage or fixed
// amount. When both are set, percentage wins.
type Adjustment struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdjustmentType string           `gorm:"type:varchar(20);not null" json:"adjustment_type"` // discount, increase
	Percentage     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"percentage"`
	FixedValue     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"fixed_value"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TariffPackage is a flat-price trip: classic matches exact departure/arrival
// coordinates, radius matches a departure plus any destination within RadiusKm
// of a center point.
type TariffPackage struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PackageType  string          `gorm:"type:varchar(20);not null" json:"package_type"` // classic, radius
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DepartureLat *float64        `gorm:"type:decimal(10,7)" json:"departure_lat"`
	DepartureLon *float64        `gorm:"type:decimal(10,7)" json:"departure_lon"`
	ArrivalLat   *float64        `gorm:"type:decimal(10,7)" json:"arrival_lat"`
	ArrivalLon   *float64        `gorm:"type:decimal(10,7)" json:"arrival_lon"`
	CenterLat    *float64        `gorm:"type:decimal(10,7)" json:"center_lat"`
	CenterLon    *float64        `gorm:"type:decimal(10,7)" json:"center_lon"`
	RadiusKm     *float64        `gorm:"type:decimal(10,2)" json:"radius_km"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PromoCode is redeemed at payment time, never during estimation. UsageCount
// increments under the redemption transaction; nil UsageLimit = unlimited.
type PromoCode struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code        string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Percentage  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"percentage"`
	FixedAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"fixed_amount"`
	UsageCount  int              `gorm:"not null;default:0" json:"usage_count"`
	UsageLimit  *int             `json:"usage_limit"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
