package pricing

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	parisDeparture = Coordinates{Lat: 48.8566, Lon: 2.3522}
	orlyArrival    = Coordinates{Lat: 48.7262, Lon: 2.3652}
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func adjustmentRule(name string, priority int, all bool) Rule {
	return Rule{
		ID:             uuid.New(),
		Name:           name,
		Priority:       priority,
		Active:         true,
		AvailableToAll: all,
		Payload:        Adjustment{Type: AdjustmentDiscount, Percentage: decPtr("10")},
	}
}

func TestFilterRules_TemporalRestrictions(t *testing.T) {
	// Tuesday 2025-03-11 at 14:30
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	before := pickup.Add(-48 * time.Hour)
	after := pickup.Add(48 * time.Hour)
	otherDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	sameDate := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Rule)
		matches bool
	}{
		{"no restrictions", func(r *Rule) {}, true},
		{"inactive", func(r *Rule) { r.Active = false }, false},
		{"before start date", func(r *Rule) { r.StartDate = &after }, false},
		{"after end date", func(r *Rule) { r.EndDate = &before }, false},
		{"inside date window", func(r *Rule) { r.StartDate = &before; r.EndDate = &after }, true},
		{"weekday matches", func(r *Rule) { r.DaysOfWeek = []string{"monday", "tuesday"} }, true},
		{"weekday does not match", func(r *Rule) { r.DaysOfWeek = []string{"saturday", "sunday"} }, false},
		{"hour window contains pickup", func(r *Rule) {
			r.SpecificHours = []HourRange{{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}}
		}, true},
		{"hour window boundary inclusive", func(r *Rule) {
			r.SpecificHours = []HourRange{{Start: "14:30", End: "14:30"}}
		}, true},
		{"hour window excludes pickup", func(r *Rule) {
			r.SpecificHours = []HourRange{{Start: "09:00", End: "12:00"}}
		}, false},
		{"application date matches", func(r *Rule) { r.ApplicationDate = &sameDate }, true},
		{"application date differs", func(r *Rule) { r.ApplicationDate = &otherDate }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := adjustmentRule("weekday discount", 1, true)
			tt.mutate(&rule)

			got := FilterRules([]Rule{rule}, pickup, &parisDeparture, &orlyArrival)
			if (len(got) == 1) != tt.matches {
				t.Errorf("matched=%v, want %v", len(got) == 1, tt.matches)
			}
		})
	}
}

func TestFilterRules_ExcludesPromoCodes(t *testing.T) {
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	rules := []Rule{
		{ID: uuid.New(), Name: "promo", Priority: 5, Active: true,
			Payload: PromoCode{Code: "SUMMER10", Percentage: decPtr("10")}},
		adjustmentRule("discount", 1, true),
	}

	got := FilterRules(rules, pickup, nil, nil)
	if len(got) != 1 || got[0].Type != RuleTypeAdjustment {
		t.Fatalf("expected only the adjustment rule, got %+v", got)
	}
}

func TestFilterRules_ClassicPackageGeoTolerance(t *testing.T) {
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

	classic := func(dep, arr Coordinates) Rule {
		return Rule{
			ID: uuid.New(), Name: "airport package", Priority: 2, Active: true, AvailableToAll: true,
			Payload: Package{Type: PackageClassic, Price: dec("85"), Departure: &dep, Arrival: &arr},
		}
	}

	tests := []struct {
		name    string
		offset  float64
		matches bool
	}{
		{"exact match", 0, true},
		{"within tolerance 0.00001", 0.00001, true},
		{"within tolerance 0.00009", 0.00009, true},
		{"beyond tolerance 0.00011", 0.00011, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep := Coordinates{Lat: parisDeparture.Lat + tt.offset, Lon: parisDeparture.Lon + tt.offset}
			rule := classic(dep, orlyArrival)

			got := FilterRules([]Rule{rule}, pickup, &parisDeparture, &orlyArrival)
			if (len(got) == 1) != tt.matches {
				t.Errorf("matched=%v, want %v (offset %v)", len(got) == 1, tt.matches, tt.offset)
			}
		})
	}
}

func TestFilterRules_RadiusPackage(t *testing.T) {
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	center := Coordinates{Lat: 48.8566, Lon: 2.3522}

	radiusRule := func(radiusKm float64) Rule {
		dep := parisDeparture
		return Rule{
			ID: uuid.New(), Name: "zone package", Priority: 2, Active: true, AvailableToAll: true,
			Payload: Package{Type: PackageRadius, Price: dec("60"), Departure: &dep, Center: &center, RadiusKm: radiusKm},
		}
	}

	// Destination roughly 14.5km south of the center.
	farDest := Coordinates{Lat: 48.7262, Lon: 2.3652}

	if got := FilterRules([]Rule{radiusRule(20)}, pickup, &parisDeparture, &farDest); len(got) != 1 {
		t.Errorf("destination inside radius should match, got %d rules", len(got))
	}
	if got := FilterRules([]Rule{radiusRule(5)}, pickup, &parisDeparture, &farDest); len(got) != 0 {
		t.Errorf("destination outside radius should not match, got %d rules", len(got))
	}
}

func TestFilterRules_PackageMissingGeoSkipped(t *testing.T) {
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	dep := parisDeparture
	rules := []Rule{
		{ID: uuid.New(), Name: "broken classic", Priority: 3, Active: true,
			Payload: Package{Type: PackageClassic, Price: dec("85"), Departure: &dep}}, // no arrival
		adjustmentRule("fallback discount", 1, true),
	}

	got := FilterRules(rules, pickup, &parisDeparture, &orlyArrival)
	if len(got) != 1 || got[0].Name != "fallback discount" {
		t.Fatalf("broken package should be skipped without failing the pass, got %+v", got)
	}
}

func TestFilterRules_SortedByPriorityDescending(t *testing.T) {
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	rules := []Rule{
		adjustmentRule("low", 1, false),
		adjustmentRule("high", 9, false),
		adjustmentRule("mid-a", 5, false),
		adjustmentRule("mid-b", 5, false),
	}

	got := FilterRules(rules, pickup, nil, nil)
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}

	want := []string{"high", "mid-a", "mid-b", "low"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v (stable ties)", names, want)
	}
}

func TestFilterRules_Idempotent(t *testing.T) {
	pickup := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	rules := []Rule{
		adjustmentRule("a", 3, false),
		adjustmentRule("b", 3, true),
		adjustmentRule("c", 1, false),
	}

	first := FilterRules(rules, pickup, &parisDeparture, &orlyArrival)
	second := FilterRules(rules, pickup, &parisDeparture, &orlyArrival)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running the filter with identical inputs changed the result")
	}
}
