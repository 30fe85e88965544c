package service

import (
	"context"
	"errors"
	"fmt"

	"vtc/internal/model"
	"vtc/internal/pricing"
	"vtc/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type ValidatePromoRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required,uuid"`
	Code      string `json:"code" binding:"required"`
	Tariff    string `json:"tariff" binding:"required"` // selected tariff before the promo
}

type PromoResultResponse struct {
	Code           string `json:"code"`
	OriginalTariff string `json:"original_tariff"`
	FinalTariff    string `json:"final_tariff"`
}

type RedeemPromoRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Code      string `json:"code" binding:"required"`
}

// --- Interface ---

// PromoService handles payment-time promo codes. Promo rules never take part
// in estimation; they discount the tariff the client already selected.
type PromoService interface {
	ValidatePromo(ctx context.Context, clientID string, req ValidatePromoRequest) (*PromoResultResponse, error)
	RedeemPromo(ctx context.Context, clientID string, req RedeemPromoRequest) (*model.Booking, error)
}

type promoService struct {
	db       *gorm.DB
	tariffs  repository.TariffRuleRepository
	bookings repository.BookingRepository
	txm      repository.TransactionManager
}

func NewPromoService(db *gorm.DB, tariffs repository.TariffRuleRepository, bookings repository.BookingRepository, txm repository.TransactionManager) PromoService {
	return &promoService{db: db, tariffs: tariffs, bookings: bookings, txm: txm}
}

// --- Implementation ---

// ValidatePromo checks eligibility and returns the discounted tariff without
// consuming a redemption.
func (s *promoService) ValidatePromo(ctx context.Context, clientID string, req ValidatePromoRequest) (*PromoResultResponse, error) {
	client, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}
	tariff, err := decimal.NewFromString(req.Tariff)
	if err != nil {
		return nil, fmt.Errorf("invalid tariff: %w", err)
	}

	promo, err := s.validate(ctx, vehicleID, req.Code, client)
	if err != nil {
		return nil, err
	}

	final := pricing.ApplyPromo(tariff, *promo)
	return &PromoResultResponse{
		Code:           promo.Code,
		OriginalTariff: tariff.StringFixed(2),
		FinalTariff:    final.StringFixed(2),
	}, nil
}

// RedeemPromo applies a promo to a pending booking and consumes one usage.
// The usage increment and the booking update share a transaction so a
// concurrent redemption can never exceed the usage limit by double-counting.
func (s *promoService) RedeemPromo(ctx context.Context, clientID string, req RedeemPromoRequest) (*model.Booking, error) {
	client, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.ClientID != client {
		return nil, fmt.Errorf("booking does not belong to this client")
	}
	if booking.Status != model.BookingPending && booking.Status != model.BookingConfirmed {
		return nil, fmt.Errorf("promo codes can only be applied before the trip starts")
	}
	if booking.PromoCodeID != nil {
		return nil, fmt.Errorf("a promo code is already applied to this booking")
	}

	promo, err := s.validate(ctx, booking.VehicleID, req.Code, client)
	if err != nil {
		return nil, err
	}

	row, err := s.tariffs.FindPromoRuleByCode(ctx, booking.VehicleID, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to locate promo code: %w", err)
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tariffs.IncrementPromoUsage(txCtx, *row.PromoCodeID); err != nil {
			return err
		}
		booking.FinalCost = pricing.ApplyPromo(booking.FinalCost, *promo)
		booking.PromoCodeID = row.PromoCodeID
		return s.bookings.Update(txCtx, booking)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to redeem promo code: %w", err)
	}

	writeAudit(ctx, s.db, clientID, model.ActionRedeemPromoCode, booking.ID.String(), promo.Code, req)
	return booking, nil
}

// validate runs the engine's promo check over the vehicle's full rule set.
func (s *promoService) validate(ctx context.Context, vehicleID uuid.UUID, code string, clientID uuid.UUID) (*pricing.PromoCode, error) {
	rules, err := s.tariffs.EngineRulesForVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tariff rules: %w", err)
	}
	return pricing.ValidatePromo(rules, code, clientID)
}
