// Package pricing implements the tariff-rule evaluation engine: rule
// filtering by time, geography and client scope, priority-based override
// resolution, and cost composition over a base standard cost. It is a pure
// package — callers load rules from storage and pass them in.
package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleType identifies which payload a rule carries.
type RuleType string

const (
	RuleTypeAdjustment RuleType = "adjustment"
	RuleTypePackage    RuleType = "package"
	RuleTypePromoCode  RuleType = "promo_code"
)

// AdjustmentType selects the direction of an adjustment.
type AdjustmentType string

const (
	AdjustmentDiscount AdjustmentType = "discount"
	AdjustmentIncrease AdjustmentType = "increase"
)

// PackageType selects how a package matches trip geography.
type PackageType string

const (
	PackageClassic PackageType = "classic"
	PackageRadius  PackageType = "radius"
)

// Coordinates is a WGS84 lat/lon pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// HourRange is an inclusive "HH:MM" time-of-day window.
type HourRange struct {
	Start string
	End   string
}

// RulePayload is the sealed payload union: exactly one of Adjustment, Package
// or PromoCode backs every rule, so a rule's type and its payload cannot
// disagree.
type RulePayload interface {
	ruleType() RuleType
}

// Adjustment raises or lowers the running cost. When both Percentage and
// FixedValue are set, Percentage takes precedence.
type Adjustment struct {
	Type       AdjustmentType
	Percentage *decimal.Decimal // percent, e.g. 15 = 15%
	FixedValue *decimal.Decimal
}

func (Adjustment) ruleType() RuleType { return RuleTypeAdjustment }

// Package replaces the running cost with a flat price when the trip matches
// its geography. Classic packages need both Departure and Arrival; radius
// packages need Departure plus Center and RadiusKm.
type Package struct {
	Type      PackageType
	Price     decimal.Decimal
	Departure *Coordinates
	Arrival   *Coordinates
	Center    *Coordinates
	RadiusKm  float64
}

func (Package) ruleType() RuleType { return RuleTypePackage }

// PromoCode is evaluated at payment time, never during estimation. A nil
// UsageLimit means unlimited redemptions.
type PromoCode struct {
	Code        string
	Percentage  *decimal.Decimal
	FixedAmount *decimal.Decimal
	UsageCount  int
	UsageLimit  *int
}

func (PromoCode) ruleType() RuleType { return RuleTypePromoCode }

// Rule is one tariff rule attached to a vehicle.
type Rule struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Priority        int // >= 1, higher wins
	Active          bool
	StartDate       *time.Time
	EndDate         *time.Time
	DaysOfWeek      []string    // lower-case weekday names; empty = no restriction
	SpecificHours   []HourRange // empty = no restriction
	ApplicationDate *time.Time  // rule applies on this calendar date only
	AvailableToAll  bool
	SpecificClients []uuid.UUID
	ExcludedClients []uuid.UUID
	Payload         RulePayload
}

// Type returns the rule type derived from the payload, or "" when the payload
// is missing.
func (r Rule) Type() RuleType {
	if r.Payload == nil {
		return ""
	}
	return r.Payload.ruleType()
}

// RuleSummary is the projection of an applicable rule handed to the override
// resolver and cost composer.
type RuleSummary struct {
	RuleID          uuid.UUID
	Name            string
	Description     string
	Type            RuleType
	ActionType      string // adjustment type or package type
	Priority        int
	AvailableToAll  bool
	SpecificClients []uuid.UUID
	ExcludedClients []uuid.UUID
	Adjustment      *Adjustment
	Package         *Package
}

// AppliedRule is one step of the cost-composition trace.
type AppliedRule struct {
	RuleID         uuid.UUID
	RuleName       string
	RuleType       RuleType
	CalculatedCost decimal.Decimal // running cost after this rule, 2dp
}
