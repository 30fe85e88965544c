package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtc/internal/model"
	"vtc/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type AdjustmentPayload struct {
	AdjustmentType string `json:"adjustment_type" binding:"required,oneof=discount increase"`
	Percentage     string `json:"percentage"`  // decimal string, e.g. "15"
	FixedValue     string `json:"fixed_value"` // decimal string
}

type PackagePayload struct {
	PackageType  string   `json:"package_type" binding:"required,oneof=classic radius"`
	Price        string   `json:"price" binding:"required"`
	DepartureLat *float64 `json:"departure_lat"`
	DepartureLon *float64 `json:"departure_lon"`
	ArrivalLat   *float64 `json:"arrival_lat"`
	ArrivalLon   *float64 `json:"arrival_lon"`
	CenterLat    *float64 `json:"center_lat"`
	CenterLon    *float64 `json:"center_lon"`
	RadiusKm     *float64 `json:"radius_km"`
}

type PromoCodePayload struct {
	Code        string `json:"code" binding:"required"`
	Percentage  string `json:"percentage"`
	FixedAmount string `json:"fixed_amount"`
	UsageLimit  *int   `json:"usage_limit"`
}

type CreateTariffRuleRequest struct {
	VehicleID       string             `json:"vehicle_id" binding:"required,uuid"`
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description"`
	RuleType        string             `json:"rule_type" binding:"required,oneof=adjustment package promo_code"`
	StartDate       string             `json:"start_date"` // RFC3339
	EndDate         string             `json:"end_date"`
	DaysOfWeek      []string           `json:"days_of_week"`
	SpecificHours   []model.HourWindow `json:"specific_hours"`
	ApplicationDate string             `json:"application_date"` // YYYY-MM-DD
	Priority        int                `json:"priority" binding:"required,gte=1"`
	AvailableToAll  bool               `json:"available_to_all"`
	SpecificClients []string           `json:"specific_clients"`
	ExcludedClients []string           `json:"excluded_clients"`
	Adjustment      *AdjustmentPayload `json:"adjustment"`
	Package         *PackagePayload    `json:"package"`
	PromoCode       *PromoCodePayload  `json:"promo_code"`
}

type UpdateTariffRuleRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Priority       int    `json:"priority" binding:"omitempty,gte=1"`
	Active         *bool  `json:"active"`
	AvailableToAll *bool  `json:"available_to_all"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// --- Interface ---

type TariffService interface {
	CreateRule(ctx context.Context, req CreateTariffRuleRequest, userID string) (*model.TariffRule, error)
	UpdateRule(ctx context.Context, id string, req UpdateTariffRuleRequest, userID string) (*model.TariffRule, error)
	DeleteRule(ctx context.Context, id string, userID string) error
	GetRule(ctx context.Context, id string) (*model.TariffRule, error)
	ListRulesByVehicle(ctx context.Context, vehicleID string, page, limit int) ([]model.TariffRule, int64, error)
}

type tariffService struct {
	db      *gorm.DB
	tariffs repository.TariffRuleRepository
	txm     repository.TransactionManager
}

func NewTariffService(db *gorm.DB, tariffs repository.TariffRuleRepository, txm repository.TransactionManager) TariffService {
	return &tariffService{db: db, tariffs: tariffs, txm: txm}
}

// --- Implementation ---

// CreateRule creates the payload row matching rule_type and the rule row in
// one transaction, keeping rule_type and the populated reference in lockstep.
func (s *tariffService) CreateRule(ctx context.Context, req CreateTariffRuleRequest, userID string) (*model.TariffRule, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}

	rule := model.TariffRule{
		VehicleID:      vehicleID,
		Name:           req.Name,
		Description:    req.Description,
		RuleType:       req.RuleType,
		DaysOfWeek:     req.DaysOfWeek,
		SpecificHours:  req.SpecificHours,
		Active:         true,
		Priority:       req.Priority,
		AvailableToAll: req.AvailableToAll,
	}

	if rule.StartDate, err = parseOptionalDateTime(req.StartDate); err != nil {
		return nil, err
	}
	if rule.EndDate, err = parseOptionalDateTime(req.EndDate); err != nil {
		return nil, err
	}
	if req.ApplicationDate != "" {
		t, err := time.Parse("2006-01-02", req.ApplicationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid application_date (expected YYYY-MM-DD): %w", err)
		}
		rule.ApplicationDate = &t
	}
	if rule.SpecificClients, err = parseIDs(req.SpecificClients); err != nil {
		return nil, fmt.Errorf("invalid specific_clients: %w", err)
	}
	if rule.ExcludedClients, err = parseIDs(req.ExcludedClients); err != nil {
		return nil, fmt.Errorf("invalid excluded_clients: %w", err)
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		switch req.RuleType {
		case model.RuleTypeAdjustment:
			if req.Adjustment == nil {
				return errors.New("adjustment payload is required for rule_type adjustment")
			}
			adj, err := buildAdjustment(*req.Adjustment)
			if err != nil {
				return err
			}
			if err := s.tariffs.CreateAdjustment(txCtx, adj); err != nil {
				return err
			}
			rule.AdjustmentID = &adj.ID
		case model.RuleTypePackage:
			if req.Package == nil {
				return errors.New("package payload is required for rule_type package")
			}
			pkg, err := buildPackage(*req.Package)
			if err != nil {
				return err
			}
			if err := s.tariffs.CreatePackage(txCtx, pkg); err != nil {
				return err
			}
			rule.PackageID = &pkg.ID
		case model.RuleTypePromoCode:
			if req.PromoCode == nil {
				return errors.New("promo_code payload is required for rule_type promo_code")
			}
			promo, err := buildPromoCode(*req.PromoCode)
			if err != nil {
				return err
			}
			if err := s.tariffs.CreatePromoCode(txCtx, promo); err != nil {
				return err
			}
			rule.PromoCodeID = &promo.ID
		}

		return s.tariffs.Create(txCtx, &rule)
	})
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(ctx, userID, model.ActionCreateTariffRule, rule.ID.String(), rule.Name, req)
	return s.tariffs.FindByID(ctx, rule.ID)
}

func (s *tariffService) UpdateRule(ctx context.Context, id string, req UpdateTariffRuleRequest, userID string) (*model.TariffRule, error) {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid tariff rule id: %w", err)
	}

	rule, err := s.tariffs.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tariff rule not found")
		}
		return nil, fmt.Errorf("failed to fetch tariff rule: %w", err)
	}

	if req.Name != "" {
		rule.Name = req.Name
	}
	if req.Description != "" {
		rule.Description = req.Description
	}
	if req.Priority > 0 {
		rule.Priority = req.Priority
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if req.AvailableToAll != nil {
		rule.AvailableToAll = *req.AvailableToAll
	}
	if req.StartDate != "" {
		if rule.StartDate, err = parseOptionalDateTime(req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != "" {
		if rule.EndDate, err = parseOptionalDateTime(req.EndDate); err != nil {
			return nil, err
		}
	}

	if err := s.tariffs.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update tariff rule: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionUpdateTariffRule, rule.ID.String(), rule.Name, req)
	return rule, nil
}

func (s *tariffService) DeleteRule(ctx context.Context, id string, userID string) error {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid tariff rule id: %w", err)
	}

	rule, err := s.tariffs.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tariff rule not found")
		}
		return fmt.Errorf("failed to fetch tariff rule: %w", err)
	}

	if err := s.tariffs.Delete(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete tariff rule: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionDeleteTariffRule, id, rule.Name, map[string]string{"deleted_id": id})
	return nil
}

func (s *tariffService) GetRule(ctx context.Context, id string) (*model.TariffRule, error) {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid tariff rule id: %w", err)
	}
	rule, err := s.tariffs.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tariff rule not found")
		}
		return nil, fmt.Errorf("failed to fetch tariff rule: %w", err)
	}
	return rule, nil
}

func (s *tariffService) ListRulesByVehicle(ctx context.Context, vehicleID string, page, limit int) ([]model.TariffRule, int64, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid vehicle id: %w", err)
	}
	return s.tariffs.ListByVehicle(ctx, id, page, limit)
}

// --- Helpers ---

func buildAdjustment(p AdjustmentPayload) (*model.Adjustment, error) {
	adj := &model.Adjustment{AdjustmentType: p.AdjustmentType}

	var err error
	if adj.Percentage, err = parseOptionalDecimal(p.Percentage, "percentage"); err != nil {
		return nil, err
	}
	if adj.FixedValue, err = parseOptionalDecimal(p.FixedValue, "fixed_value"); err != nil {
		return nil, err
	}
	if adj.Percentage == nil && adj.FixedValue == nil {
		return nil, errors.New("adjustment requires a percentage or fixed_value")
	}
	return adj, nil
}

func buildPackage(p PackagePayload) (*model.TariffPackage, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid package price: %w", err)
	}

	pkg := &model.TariffPackage{
		PackageType:  p.PackageType,
		Price:        price,
		DepartureLat: p.DepartureLat,
		DepartureLon: p.DepartureLon,
		ArrivalLat:   p.ArrivalLat,
		ArrivalLon:   p.ArrivalLon,
		CenterLat:    p.CenterLat,
		CenterLon:    p.CenterLon,
		RadiusKm:     p.RadiusKm,
	}

	switch p.PackageType {
	case model.PackageClassic:
		if pkg.DepartureLat == nil || pkg.DepartureLon == nil || pkg.ArrivalLat == nil || pkg.ArrivalLon == nil {
			return nil, errors.New("classic package requires departure and arrival coordinates")
		}
	case model.PackageRadius:
		if pkg.DepartureLat == nil || pkg.DepartureLon == nil || pkg.CenterLat == nil || pkg.CenterLon == nil || pkg.RadiusKm == nil {
			return nil, errors.New("radius package requires departure, center coordinates and radius_km")
		}
	}
	return pkg, nil
}

func buildPromoCode(p PromoCodePayload) (*model.PromoCode, error) {
	promo := &model.PromoCode{Code: p.Code, UsageLimit: p.UsageLimit}

	var err error
	if promo.Percentage, err = parseOptionalDecimal(p.Percentage, "percentage"); err != nil {
		return nil, err
	}
	if promo.FixedAmount, err = parseOptionalDecimal(p.FixedAmount, "fixed_amount"); err != nil {
		return nil, err
	}
	return promo, nil
}

func parseOptionalDecimal(s, field string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", field, err)
	}
	return &d, nil
}

func parseOptionalDateTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid datetime (expected RFC3339): %w", err)
	}
	return &t, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *tariffService) writeAuditLog(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	writeAudit(ctx, s.db, userID, action, entityID, entityName, details)
}
