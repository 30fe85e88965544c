package pricing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPromoNotFound    = errors.New("promo code not found for this vehicle")
	ErrPromoExhausted   = errors.New("promo code usage limit reached")
	ErrPromoNotEligible = errors.New("promo code not available to this client")
)

// ValidatePromo checks a promo code against a vehicle's rule set: the rule
// must be active with a matching code, not exhausted, and visible to the
// client. Scope resolution: available_to_all wins, then the specific-clients
// allow-list, then the excluded-clients deny-list; a rule with no scope
// restrictions accepts everyone.
func ValidatePromo(rules []Rule, code string, clientID uuid.UUID) (*PromoCode, error) {
	for _, r := range rules {
		promo, ok := r.Payload.(PromoCode)
		if !ok || !r.Active || promo.Code != code {
			continue
		}

		if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
			return nil, ErrPromoExhausted
		}

		if !promoEligible(r, clientID) {
			return nil, ErrPromoNotEligible
		}

		return &promo, nil
	}

	return nil, ErrPromoNotFound
}

func promoEligible(r Rule, clientID uuid.UUID) bool {
	if r.AvailableToAll {
		return true
	}
	if len(r.SpecificClients) > 0 {
		return containsID(r.SpecificClients, clientID)
	}
	if len(r.ExcludedClients) > 0 {
		return !containsID(r.ExcludedClients, clientID)
	}
	return true
}

// ApplyPromo reduces the selected tariff by the promo's percentage first and
// fixed amount second, floored at zero and rounded to 2 decimal places.
func ApplyPromo(tariff decimal.Decimal, promo PromoCode) decimal.Decimal {
	result := tariff
	if promo.Percentage != nil {
		result = result.Sub(result.Mul(*promo.Percentage).Div(hundred))
	}
	if promo.FixedAmount != nil {
		result = result.Sub(*promo.FixedAmount)
	}
	if result.IsNegative() {
		result = decimal.Zero
	}
	return result.Round(2)
}

func containsID(list []uuid.UUID, id uuid.UUID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
