package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtc/internal/model"
	"vtc/internal/pricing"
	"vtc/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type EstimateRequest struct {
	VehicleID        string   `json:"vehicle_id" binding:"required,uuid"`
	EstimateType     string   `json:"estimate_type" binding:"omitempty,oneof=transfer provision"`
	PickupAt         string   `json:"pickup_at" binding:"required"` // RFC3339
	DepartureLat     *float64 `json:"departure_lat"`
	DepartureLon     *float64 `json:"departure_lon"`
	DestinationLat   *float64 `json:"destination_lat"`
	DestinationLon   *float64 `json:"destination_lon"`
	DistanceKm       float64  `json:"distance_km" binding:"gte=0"`
	ReturnDistanceKm float64  `json:"return_distance_km" binding:"gte=0"`
	DurationMinutes  float64  `json:"duration_minutes" binding:"gte=0"`
}

type StandardCostResponse struct {
	VehicleID   string `json:"vehicle_id"`
	VehicleName string `json:"vehicle_name"`
	TotalCost   string `json:"total_cost"`
}

type AppliedRuleResponse struct {
	RuleID          string   `json:"rule_id"`
	RuleName        string   `json:"rule_name"`
	RuleDescription string   `json:"rule_description"`
	RuleType        string   `json:"rule_type"`
	CalculatedCost  string   `json:"calculated_cost"`
	AvailableToAll  bool     `json:"available_to_all"`
	SpecificClients []string `json:"specific_clients"`
	ExcludedClients []string `json:"excluded_clients"`
}

type EstimateResponse struct {
	StandardCost StandardCostResponse  `json:"standard_cost"`
	AppliedRules []AppliedRuleResponse `json:"applied_rules"`
	OnDemand     bool                  `json:"on_demand"` // true = no computed tariff, price on request
}

// --- Interface ---

type EstimateService interface {
	EstimateTrip(ctx context.Context, req EstimateRequest) (*EstimateResponse, error)
}

type estimateService struct {
	vehicles repository.VehicleRepository
	tariffs  repository.TariffRuleRepository
}

func NewEstimateService(vehicles repository.VehicleRepository, tariffs repository.TariffRuleRepository) EstimateService {
	return &estimateService{vehicles: vehicles, tariffs: tariffs}
}

// --- Implementation ---

// EstimateTrip computes the standard cost for a trip and applies the
// vehicle's applicable tariff rules: filter by time and geography, resolve
// priority overrides, then compose the final cost. Promo codes are not
// evaluated here — they apply at payment time.
func (s *estimateService) EstimateTrip(ctx context.Context, req EstimateRequest) (*EstimateResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}

	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	// On-demand vehicles carry no computed tariff at estimation time.
	if vehicle.AvailabilityType == model.AvailabilityOnDemand {
		return &EstimateResponse{
			StandardCost: StandardCostResponse{
				VehicleID:   vehicle.ID.String(),
				VehicleName: vehicle.Name,
				TotalCost:   "0.00",
			},
			AppliedRules: []AppliedRuleResponse{},
			OnDemand:     true,
		}, nil
	}

	pickupAt, err := time.Parse(time.RFC3339, req.PickupAt)
	if err != nil {
		return nil, fmt.Errorf("invalid pickup_at datetime (expected RFC3339): %w", err)
	}

	estimateType := req.EstimateType
	if estimateType == "" {
		estimateType = model.EstimateTransfer
	}
	vatRate := s.vatRateFor(ctx, estimateType)

	base := pricing.StandardCost(
		pricing.VehicleRates{
			BookingFee:       vehicle.BookingFee,
			DeliveryFee:      vehicle.DeliveryFee,
			PricePerKm:       vehicle.PricePerKm,
			PricePerDuration: vehicle.PricePerDuration,
			DefaultFee:       vehicle.DefaultFee,
			DistanceToBaseKm: vehicle.DistanceToBaseKm,
		},
		pricing.TripMetrics{
			DistanceKm:       decimal.NewFromFloat(req.DistanceKm),
			ReturnDistanceKm: decimal.NewFromFloat(req.ReturnDistanceKm),
			DurationMinutes:  decimal.NewFromFloat(req.DurationMinutes),
		},
		vatRate,
	)

	rules, err := s.tariffs.EngineRulesForVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tariff rules: %w", err)
	}

	departure := coordsFromReq(req.DepartureLat, req.DepartureLon)
	destination := coordsFromReq(req.DestinationLat, req.DestinationLon)

	filtered := pricing.FilterRules(rules, pickupAt, departure, destination)
	resolved := pricing.ResolveOverrides(filtered)
	final, trace := pricing.Compose(base, resolved)

	return &EstimateResponse{
		StandardCost: StandardCostResponse{
			VehicleID:   vehicle.ID.String(),
			VehicleName: vehicle.Name,
			TotalCost:   final.StringFixed(2),
		},
		AppliedRules: buildAppliedRules(resolved, trace),
	}, nil
}

// vatRateFor looks up the configured VAT rate for the estimate type, falling
// back to the default 10% when none is configured.
func (s *estimateService) vatRateFor(ctx context.Context, estimateType string) decimal.Decimal {
	rate, err := s.vehicles.FindVATRate(ctx, estimateType)
	if err != nil {
		return pricing.DefaultVATRate
	}
	return rate.Rate
}

func coordsFromReq(lat, lon *float64) *pricing.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	return &pricing.Coordinates{Lat: *lat, Lon: *lon}
}

// buildAppliedRules merges the resolver output with the composer trace; both
// share the same order and length.
func buildAppliedRules(resolved []pricing.RuleSummary, trace []pricing.AppliedRule) []AppliedRuleResponse {
	applied := make([]AppliedRuleResponse, 0, len(trace))
	for i, step := range trace {
		resp := AppliedRuleResponse{
			RuleID:          step.RuleID.String(),
			RuleName:        step.RuleName,
			RuleType:        string(step.RuleType),
			CalculatedCost:  step.CalculatedCost.StringFixed(2),
			SpecificClients: []string{},
			ExcludedClients: []string{},
		}
		if i < len(resolved) {
			resp.RuleDescription = resolved[i].Description
			resp.AvailableToAll = resolved[i].AvailableToAll
			resp.SpecificClients = idStrings(resolved[i].SpecificClients)
			resp.ExcludedClients = idStrings(resolved[i].ExcludedClients)
		}
		applied = append(applied, resp)
	}
	return applied
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
