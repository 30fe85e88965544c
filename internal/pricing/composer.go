package pricing

import "github.com/shopspring/decimal"

var (
	hundred        = decimal.NewFromInt(100)
	minutesPerHour = decimal.NewFromInt(60)

	// DefaultVATRate applies when no VAT rate is configured for an estimate
	// type. Fraction: 0.10 = 10%.
	DefaultVATRate = decimal.NewFromFloat(0.10)
)

// Compose applies the resolved rules in order to the base standard cost and
// returns the final cost with a per-rule trace. Package rules replace the
// running cost with their flat price; adjustments add or subtract a
// percentage (precedence) or fixed amount, with discounts floored at zero.
// Every step is rounded to 2 decimal places, half-up.
func Compose(baseStandardCost decimal.Decimal, resolved []RuleSummary) (decimal.Decimal, []AppliedRule) {
	current := baseStandardCost.Round(2)
	trace := make([]AppliedRule, 0, len(resolved))

	for _, rule := range resolved {
		switch {
		case rule.Package != nil:
			current = rule.Package.Price
		case rule.Adjustment != nil:
			current = applyAdjustment(current, *rule.Adjustment)
		default:
			continue
		}

		current = current.Round(2)
		trace = append(trace, AppliedRule{
			RuleID:         rule.RuleID,
			RuleName:       rule.Name,
			RuleType:       rule.Type,
			CalculatedCost: current,
		})
	}

	return current, trace
}

func applyAdjustment(current decimal.Decimal, adj Adjustment) decimal.Decimal {
	var delta decimal.Decimal
	if adj.Percentage != nil {
		delta = current.Mul(*adj.Percentage).Div(hundred)
	} else if adj.FixedValue != nil {
		delta = *adj.FixedValue
	} else {
		return current
	}

	switch adj.Type {
	case AdjustmentIncrease:
		return current.Add(delta)
	default: // discount
		result := current.Sub(delta)
		if result.IsNegative() {
			return decimal.Zero
		}
		return result
	}
}

// VehicleRates carries the vehicle pricing fields needed for the base cost.
type VehicleRates struct {
	BookingFee       decimal.Decimal
	DeliveryFee      decimal.Decimal // per km, approach and return legs
	PricePerKm       decimal.Decimal
	PricePerDuration decimal.Decimal // per hour
	DefaultFee       decimal.Decimal // minimum charge floor
	DistanceToBaseKm decimal.Decimal
}

// TripMetrics carries the routed trip measurements.
type TripMetrics struct {
	DistanceKm       decimal.Decimal
	ReturnDistanceKm decimal.Decimal
	DurationMinutes  decimal.Decimal
}

// StandardCost computes the pre-rule cost of a trip:
//
//	booking_fee
//	+ delivery_fee * distance_to_base_km
//	+ price_per_km * trip_distance_km
//	+ delivery_fee * return_distance_km
//	+ (price_per_duration / 60) * trip_duration_minutes
//
// inflated by the VAT rate (a fraction, e.g. 0.10), floored at the vehicle's
// default fee and rounded to 2 decimal places half-up.
func StandardCost(rates VehicleRates, trip TripMetrics, vatRate decimal.Decimal) decimal.Decimal {
	cost := rates.BookingFee.
		Add(rates.DeliveryFee.Mul(rates.DistanceToBaseKm)).
		Add(rates.PricePerKm.Mul(trip.DistanceKm)).
		Add(rates.DeliveryFee.Mul(trip.ReturnDistanceKm)).
		Add(rates.PricePerDuration.Div(minutesPerHour).Mul(trip.DurationMinutes))

	cost = cost.Mul(decimal.NewFromInt(1).Add(vatRate))

	if cost.LessThan(rates.DefaultFee) {
		cost = rates.DefaultFee
	}

	return cost.Round(2)
}
