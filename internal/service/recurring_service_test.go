package service

import (
	"testing"
	"time"

	"vtc/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCloneBookingAt(t *testing.T) {
	templateID := uuid.New()
	promoID := uuid.New()
	base := model.Booking{
		ID:              uuid.New(),
		ClientID:        uuid.New(),
		VehicleID:       uuid.New(),
		Status:          model.BookingCompleted,
		EstimateType:    model.EstimateTransfer,
		PickupAddress:   "12 Rue de Rivoli, Paris",
		DropoffAddress:  "CDG Terminal 2E",
		PickupAt:        time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		DistanceKm:      decimal.RequireFromString("32.5"),
		StandardCost:    decimal.RequireFromString("120.00"),
		FinalCost:       decimal.RequireFromString("96.00"),
		PromoCodeID:     &promoID,
		IsRoundTrip:     true,
	}

	scheduledAt := time.Date(2025, 4, 7, 9, 30, 0, 0, time.UTC)
	clone := cloneBookingAt(base, scheduledAt, templateID)

	if clone.ID != uuid.Nil {
		t.Error("clone must not inherit the base booking's identity")
	}
	if clone.Status != model.BookingPending {
		t.Errorf("clone must start PENDING, got %s", clone.Status)
	}
	if clone.PromoCodeID != nil {
		t.Error("promo linkage must not carry over to generated bookings")
	}
	if clone.IsRoundTrip {
		t.Error("generated bookings clone the outbound leg only")
	}
	if !clone.PickupAt.Equal(scheduledAt) {
		t.Errorf("expected pickup at %v, got %v", scheduledAt, clone.PickupAt)
	}
	if clone.RecurringTemplateID == nil || *clone.RecurringTemplateID != templateID {
		t.Error("clone must reference its template")
	}
	if clone.ClientID != base.ClientID || clone.VehicleID != base.VehicleID {
		t.Error("clone must keep the base client and vehicle")
	}
	if !clone.FinalCost.Equal(base.FinalCost) {
		t.Errorf("clone must keep the base final cost, got %s", clone.FinalCost)
	}
}
