package service

import (
	"context"
	"errors"
	"fmt"

	"vtc/internal/model"
	"vtc/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateVehicleRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	AvailabilityType string  `json:"availability_type" binding:"omitempty,oneof=always_available on_demand"`
	Seats            int     `json:"seats" binding:"omitempty,min=1,max=60"`
	BookingFee       string  `json:"booking_fee"`
	DeliveryFee      string  `json:"delivery_fee"`
	PricePerKm       string  `json:"price_per_km"`
	PricePerDuration string  `json:"price_per_duration"`
	DefaultFee       string  `json:"default_fee"`
	DistanceToBaseKm float64 `json:"distance_to_base_km" binding:"gte=0"`
}

type UpdateVehicleRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	AvailabilityType string `json:"availability_type" binding:"omitempty,oneof=always_available on_demand"`
	Seats            *int   `json:"seats" binding:"omitempty,min=1,max=60"`
	BookingFee       string `json:"booking_fee"`
	DeliveryFee      string `json:"delivery_fee"`
	PricePerKm       string `json:"price_per_km"`
	PricePerDuration string `json:"price_per_duration"`
	DefaultFee       string `json:"default_fee"`
	Active           *bool  `json:"active"`
}

type CreateVATRateRequest struct {
	EstimateType string `json:"estimate_type" binding:"required,oneof=transfer provision"`
	Rate         string `json:"rate" binding:"required"` // fraction, e.g. "0.10"
	Description  string `json:"description"`
}

// --- Interface ---

type VehicleService interface {
	CreateVehicle(ctx context.Context, userID string, req CreateVehicleRequest) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID, id string, req UpdateVehicleRequest) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID, id string) error
	GetVehicle(ctx context.Context, id string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, page, limit int, activeOnly bool) ([]model.Vehicle, int64, error)
	CreateVATRate(ctx context.Context, userID string, req CreateVATRateRequest) (*model.VATRate, error)
}

type vehicleService struct {
	db       *gorm.DB
	vehicles repository.VehicleRepository
}

func NewVehicleService(db *gorm.DB, vehicles repository.VehicleRepository) VehicleService {
	return &vehicleService{db: db, vehicles: vehicles}
}

// --- Implementation ---

func (s *vehicleService) CreateVehicle(ctx context.Context, userID string, req CreateVehicleRequest) (*model.Vehicle, error) {
	vehicle := model.Vehicle{
		Name:             req.Name,
		Description:      req.Description,
		AvailabilityType: model.AvailabilityAlways,
		Seats:            4,
		DistanceToBaseKm: decimal.NewFromFloat(req.DistanceToBaseKm),
		Active:           true,
	}
	if req.AvailabilityType != "" {
		vehicle.AvailabilityType = req.AvailabilityType
	}
	if req.Seats > 0 {
		vehicle.Seats = req.Seats
	}

	fees := []struct {
		raw   string
		field string
		dst   *decimal.Decimal
	}{
		{req.BookingFee, "booking_fee", &vehicle.BookingFee},
		{req.DeliveryFee, "delivery_fee", &vehicle.DeliveryFee},
		{req.PricePerKm, "price_per_km", &vehicle.PricePerKm},
		{req.PricePerDuration, "price_per_duration", &vehicle.PricePerDuration},
		{req.DefaultFee, "default_fee", &vehicle.DefaultFee},
	}
	for _, f := range fees {
		if f.raw == "" {
			continue
		}
		parsed, err := decimal.NewFromString(f.raw)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("invalid %s: must be a non-negative decimal", f.field)
		}
		*f.dst = parsed
	}

	if err := s.vehicles.Create(ctx, &vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionCreateVehicle, vehicle.ID.String(), vehicle.Name, req)
	return &vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, userID, id string, req UpdateVehicleRequest) (*model.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
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

	if req.Name != "" {
		vehicle.Name = req.Name
	}
	if req.Description != "" {
		vehicle.Description = req.Description
	}
	if req.AvailabilityType != "" {
		vehicle.AvailabilityType = req.AvailabilityType
	}
	if req.Seats != nil {
		vehicle.Seats = *req.Seats
	}
	if req.Active != nil {
		vehicle.Active = *req.Active
	}

	fees := []struct {
		raw   string
		field string
		dst   *decimal.Decimal
	}{
		{req.BookingFee, "booking_fee", &vehicle.BookingFee},
		{req.DeliveryFee, "delivery_fee", &vehicle.DeliveryFee},
		{req.PricePerKm, "price_per_km", &vehicle.PricePerKm},
		{req.PricePerDuration, "price_per_duration", &vehicle.PricePerDuration},
		{req.DefaultFee, "default_fee", &vehicle.DefaultFee},
	}
	for _, f := range fees {
		if f.raw == "" {
			continue
		}
		parsed, err := decimal.NewFromString(f.raw)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("invalid %s: must be a non-negative decimal", f.field)
		}
		*f.dst = parsed
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionUpdateVehicle, vehicle.ID.String(), vehicle.Name, req)
	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, userID, id string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle id: %w", err)
	}

	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("vehicle not found")
		}
		return fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	if err := s.vehicles.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionDeleteVehicle, vehicle.ID.String(), vehicle.Name, nil)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
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
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, page, limit int, activeOnly bool) ([]model.Vehicle, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.vehicles.List(ctx, page, limit, activeOnly)
}

func (s *vehicleService) CreateVATRate(ctx context.Context, userID string, req CreateVATRateRequest) (*model.VATRate, error) {
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("invalid rate: must be a fraction between 0 and 1")
	}

	if _, err := s.vehicles.FindVATRate(ctx, req.EstimateType); err == nil {
		return nil, fmt.Errorf("a VAT rate for %s already exists", req.EstimateType)
	}

	vatRate := model.VATRate{
		EstimateType: req.EstimateType,
		Rate:         rate,
		Description:  req.Description,
	}
	if err := s.vehicles.CreateVATRate(ctx, &vatRate); err != nil {
		return nil, fmt.Errorf("failed to create VAT rate: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionCreateVATRate, vatRate.ID.String(), req.EstimateType, req)
	return &vatRate, nil
}
