package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func adjSummary(name string, typ AdjustmentType, percentage, fixed *decimal.Decimal) RuleSummary {
	return RuleSummary{
		RuleID:     uuid.New(),
		Name:       name,
		Type:       RuleTypeAdjustment,
		ActionType: string(typ),
		Adjustment: &Adjustment{Type: typ, Percentage: percentage, FixedValue: fixed},
	}
}

func pkgSummary(name, price string) RuleSummary {
	return RuleSummary{
		RuleID:  uuid.New(),
		Name:    name,
		Type:    RuleTypePackage,
		Package: &Package{Type: PackageClassic, Price: dec(price)},
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		rules []RuleSummary
		want  string
	}{
		{"no rules", "120.00", nil, "120.00"},
		{"percentage discount", "100", []RuleSummary{adjSummary("d", AdjustmentDiscount, decPtr("15"), nil)}, "85.00"},
		{"fixed discount", "100", []RuleSummary{adjSummary("d", AdjustmentDiscount, nil, decPtr("12.5"))}, "87.50"},
		{"percentage precedence over fixed", "100",
			[]RuleSummary{adjSummary("d", AdjustmentDiscount, decPtr("10"), decPtr("99"))}, "90.00"},
		{"increase", "100", []RuleSummary{adjSummary("i", AdjustmentIncrease, decPtr("20"), nil)}, "120.00"},
		{"overshooting discount floors at zero", "10",
			[]RuleSummary{adjSummary("d", AdjustmentDiscount, decPtr("150"), nil)}, "0.00"},
		{"package replaces running cost", "200",
			[]RuleSummary{
				adjSummary("d", AdjustmentDiscount, decPtr("50"), nil),
				pkgSummary("flat", "85"),
			}, "85.00"},
		{"adjustment applies on top of package price", "200",
			[]RuleSummary{
				pkgSummary("flat", "80"),
				adjSummary("i", AdjustmentIncrease, decPtr("10"), nil),
			}, "88.00"},
		{"rounding half-up per step", "100",
			[]RuleSummary{adjSummary("d", AdjustmentDiscount, decPtr("33.333"), nil)}, "66.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, trace := Compose(dec(tt.base), tt.rules)
			if final.StringFixed(2) != tt.want {
				t.Errorf("final cost = %s, want %s", final.StringFixed(2), tt.want)
			}
			if len(trace) != len(tt.rules) {
				t.Errorf("trace has %d entries, want %d", len(trace), len(tt.rules))
			}
			if len(trace) > 0 && !trace[len(trace)-1].CalculatedCost.Equal(final) {
				t.Errorf("last trace cost %s != final %s",
					trace[len(trace)-1].CalculatedCost, final)
			}
		})
	}
}

func TestCompose_CostNeverNegative(t *testing.T) {
	rules := []RuleSummary{
		adjSummary("d1", AdjustmentDiscount, decPtr("90"), nil),
		adjSummary("d2", AdjustmentDiscount, nil, decPtr("500")),
		adjSummary("d3", AdjustmentDiscount, decPtr("150"), nil),
	}

	final, trace := Compose(dec("47.31"), rules)
	if final.IsNegative() {
		t.Fatalf("final cost went negative: %s", final)
	}
	for _, step := range trace {
		if step.CalculatedCost.IsNegative() {
			t.Errorf("trace step %q went negative: %s", step.RuleName, step.CalculatedCost)
		}
	}
}

func TestStandardCost(t *testing.T) {
	rates := VehicleRates{
		BookingFee:       dec("5"),
		DeliveryFee:      dec("1.50"),
		PricePerKm:       dec("2"),
		PricePerDuration: dec("60"), // 1/min once divided
		DefaultFee:       dec("20"),
		DistanceToBaseKm: dec("4"),
	}
	trip := TripMetrics{
		DistanceKm:       dec("10"),
		ReturnDistanceKm: dec("6"),
		DurationMinutes:  dec("30"),
	}

	// 5 + 1.5*4 + 2*10 + 1.5*6 + (60/60)*30 = 70; +10% VAT = 77.00
	got := StandardCost(rates, trip, dec("0.10"))
	if got.StringFixed(2) != "77.00" {
		t.Errorf("StandardCost = %s, want 77.00", got.StringFixed(2))
	}
}

func TestStandardCost_DefaultFeeFloor(t *testing.T) {
	rates := VehicleRates{
		BookingFee:       dec("2"),
		DeliveryFee:      dec("0"),
		PricePerKm:       dec("1"),
		PricePerDuration: dec("0"),
		DefaultFee:       dec("35"),
		DistanceToBaseKm: dec("0"),
	}
	trip := TripMetrics{DistanceKm: dec("3"), ReturnDistanceKm: dec("0"), DurationMinutes: dec("0")}

	// 2 + 3 = 5, +10% = 5.50, floored at 35
	got := StandardCost(rates, trip, DefaultVATRate)
	if got.StringFixed(2) != "35.00" {
		t.Errorf("StandardCost = %s, want default fee 35.00", got.StringFixed(2))
	}
}
