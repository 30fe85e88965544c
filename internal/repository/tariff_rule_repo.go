package repository

import (
	"context"

	"vtc/internal/model"
	"vtc/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TariffRuleRepository defines data access for tariff rules and their
// payloads (adjustments, packages, promo codes).
type TariffRuleRepository interface {
	Create(ctx context.Context, rule *model.TariffRule) error
	Update(ctx context.Context, rule *model.TariffRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TariffRule, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, page, limit int) ([]model.TariffRule, int64, error)
	EngineRulesForVehicle(ctx context.Context, vehicleID uuid.UUID) ([]pricing.Rule, error)
	CreateAdjustment(ctx context.Context, adj *model.Adjustment) error
	CreatePackage(ctx context.Context, pkg *model.TariffPackage) error
	CreatePromoCode(ctx context.Context, promo *model.PromoCode) error
	FindPromoRuleByCode(ctx context.Context, vehicleID uuid.UUID, code string) (*model.TariffRule, error)
	IncrementPromoUsage(ctx context.Context, promoID uuid.UUID) error
}

type tariffRuleRepository struct {
	db *gorm.DB
}

func NewTariffRuleRepository(db *gorm.DB) TariffRuleRepository {
	return &tariffRuleRepository{db: db}
}

func (r *tariffRuleRepository) Create(ctx context.Context, rule *model.TariffRule) error {
	return GetDB(ctx, r.db).Create(rule).Error
}

func (r *tariffRuleRepository) Update(ctx context.Context, rule *model.TariffRule) error {
	return GetDB(ctx, r.db).Save(rule).Error
}

func (r *tariffRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TariffRule{}).Error
}

func (r *tariffRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TariffRule, error) {
	var rule model.TariffRule
	if err := GetDB(ctx, r.db).
		Preload("Adjustment").Preload("Package").Preload("PromoCode").
		First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *tariffRuleRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, page, limit int) ([]model.TariffRule, int64, error) {
	var rules []model.TariffRule
	var total int64

	db := GetDB(ctx, r.db).Model(&model.TariffRule{}).Where("vehicle_id = ?", vehicleID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Adjustment").Preload("Package").Preload("PromoCode").
		Order("priority desc, created_at asc").
		Offset(offset).Limit(limit).Find(&rules).Error; err != nil {
		return nil, 0, err
	}

	return rules, total, nil
}

// EngineRulesForVehicle loads all of a vehicle's rules converted for the
// pricing engine. Rows whose payload is missing or mismatched with rule_type
// are skipped (data errors are not fatal to the whole pass).
func (r *tariffRuleRepository) EngineRulesForVehicle(ctx context.Context, vehicleID uuid.UUID) ([]pricing.Rule, error) {
	var rows []model.TariffRule
	if err := GetDB(ctx, r.db).
		Preload("Adjustment").Preload("Package").Preload("PromoCode").
		Where("vehicle_id = ?", vehicleID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	rules := make([]pricing.Rule, 0, len(rows))
	for _, row := range rows {
		if rule, ok := ToEngineRule(row); ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (r *tariffRuleRepository) CreateAdjustment(ctx context.Context, adj *model.Adjustment) error {
	return GetDB(ctx, r.db).Create(adj).Error
}

func (r *tariffRuleRepository) CreatePackage(ctx context.Context, pkg *model.TariffPackage) error {
	return GetDB(ctx, r.db).Create(pkg).Error
}

func (r *tariffRuleRepository) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	return GetDB(ctx, r.db).Create(promo).Error
}

// FindPromoRuleByCode locates the active promo rule carrying the given code
// for a vehicle, with its payload preloaded.
func (r *tariffRuleRepository) FindPromoRuleByCode(ctx context.Context, vehicleID uuid.UUID, code string) (*model.TariffRule, error) {
	var rule model.TariffRule
	if err := GetDB(ctx, r.db).
		Preload("PromoCode").
		Joins("JOIN promo_codes ON promo_codes.id = tariff_rules.promo_code_id").
		Where("tariff_rules.vehicle_id = ? AND tariff_rules.rule_type = ? AND tariff_rules.active = ? AND promo_codes.code = ?",
			vehicleID, model.RuleTypePromoCode, true, code).
		First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// IncrementPromoUsage bumps usage_count atomically; callers run it inside the
// redemption transaction so concurrent redemptions cannot double-count.
func (r *tariffRuleRepository) IncrementPromoUsage(ctx context.Context, promoID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.PromoCode{}).
		Where("id = ?", promoID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

// ToEngineRule converts a stored rule row into the pricing engine's tagged
// union. Returns false when the payload reference named by rule_type is not
// populated.
func ToEngineRule(row model.TariffRule) (pricing.Rule, bool) {
	rule := pricing.Rule{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Priority:        row.Priority,
		Active:          row.Active,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
		ApplicationDate: row.ApplicationDate,
		AvailableToAll:  row.AvailableToAll,
		SpecificClients: row.SpecificClients,
		ExcludedClients: row.ExcludedClients,
	}

	rule.DaysOfWeek = row.DaysOfWeek
	for _, w := range row.SpecificHours {
		rule.SpecificHours = append(rule.SpecificHours, pricing.HourRange{Start: w.Start, End: w.End})
	}

	switch row.RuleType {
	case model.RuleTypeAdjustment:
		if row.Adjustment == nil {
			return pricing.Rule{}, false
		}
		rule.Payload = pricing.Adjustment{
			Type:       pricing.AdjustmentType(row.Adjustment.AdjustmentType),
			Percentage: row.Adjustment.Percentage,
			FixedValue: row.Adjustment.FixedValue,
		}
	case model.RuleTypePackage:
		if row.Package == nil {
			return pricing.Rule{}, false
		}
		pkg := pricing.Package{
			Type:  pricing.PackageType(row.Package.PackageType),
			Price: row.Package.Price,
		}
		pkg.Departure = coords(row.Package.DepartureLat, row.Package.DepartureLon)
		pkg.Arrival = coords(row.Package.ArrivalLat, row.Package.ArrivalLon)
		pkg.Center = coords(row.Package.CenterLat, row.Package.CenterLon)
		if row.Package.RadiusKm != nil {
			pkg.RadiusKm = *row.Package.RadiusKm
		}
		rule.Payload = pkg
	case model.RuleTypePromoCode:
		if row.PromoCode == nil {
			return pricing.Rule{}, false
		}
		rule.Payload = pricing.PromoCode{
			Code:        row.PromoCode.Code,
			Percentage:  row.PromoCode.Percentage,
			FixedAmount: row.PromoCode.FixedAmount,
			UsageCount:  row.PromoCode.UsageCount,
			UsageLimit:  row.PromoCode.UsageLimit,
		}
	default:
		return pricing.Rule{}, false
	}

	return rule, true
}

func coords(lat, lon *float64) *pricing.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	return &pricing.Coordinates{Lat: *lat, Lon: *lon}
}
