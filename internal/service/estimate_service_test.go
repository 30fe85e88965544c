package service

import (
	"testing"

	"vtc/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestBuildAppliedRules(t *testing.T) {
	ruleA := uuid.New()
	ruleB := uuid.New()
	clientID := uuid.New()

	resolved := []pricing.RuleSummary{
		{RuleID: ruleA, Name: "weekend surcharge", Description: "weekend trips", Type: pricing.RuleTypeAdjustment, AvailableToAll: true},
		{RuleID: ruleB, Name: "corporate discount", Type: pricing.RuleTypeAdjustment, SpecificClients: []uuid.UUID{clientID}},
	}
	trace := []pricing.AppliedRule{
		{RuleID: ruleA, RuleName: "weekend surcharge", RuleType: pricing.RuleTypeAdjustment, CalculatedCost: decimal.RequireFromString("115.00")},
		{RuleID: ruleB, RuleName: "corporate discount", RuleType: pricing.RuleTypeAdjustment, CalculatedCost: decimal.RequireFromString("103.50")},
	}

	applied := buildAppliedRules(resolved, trace)

	if len(applied) != 2 {
		t.Fatalf("expected 2 applied rules, got %d", len(applied))
	}
	if applied[0].RuleID != ruleA.String() || applied[0].CalculatedCost != "115.00" {
		t.Errorf("unexpected first rule: %+v", applied[0])
	}
	if !applied[0].AvailableToAll {
		t.Error("first rule should carry available_to_all from the resolver output")
	}
	if applied[0].RuleDescription != "weekend trips" {
		t.Errorf("expected description from resolver output, got %q", applied[0].RuleDescription)
	}
	if len(applied[1].SpecificClients) != 1 || applied[1].SpecificClients[0] != clientID.String() {
		t.Errorf("expected specific client %s, got %v", clientID, applied[1].SpecificClients)
	}
	// JSON-friendly: scope lists are never nil.
	if applied[0].SpecificClients == nil || applied[0].ExcludedClients == nil {
		t.Error("scope lists must be empty slices, not nil")
	}
}

func TestBuildAppliedRulesEmpty(t *testing.T) {
	applied := buildAppliedRules(nil, nil)
	if len(applied) != 0 {
		t.Fatalf("expected no applied rules, got %d", len(applied))
	}
}

func TestCoordsFromReq(t *testing.T) {
	lat, lon := 48.8566, 2.3522

	if got := coordsFromReq(&lat, &lon); got == nil || got.Lat != lat || got.Lon != lon {
		t.Errorf("expected coordinates {%v %v}, got %v", lat, lon, got)
	}
	if got := coordsFromReq(&lat, nil); got != nil {
		t.Errorf("partial coordinates should yield nil, got %v", got)
	}
	if got := coordsFromReq(nil, nil); got != nil {
		t.Errorf("missing coordinates should yield nil, got %v", got)
	}
}
