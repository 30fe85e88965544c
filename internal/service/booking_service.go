package service

import (
	"context"
	"encoding/json"
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

type SegmentRequest struct {
	PickupAddress   string  `json:"pickup_address" binding:"required"`
	DropoffAddress  string  `json:"dropoff_address" binding:"required"`
	PickupLat       float64 `json:"pickup_lat"`
	PickupLon       float64 `json:"pickup_lon"`
	DropoffLat      float64 `json:"dropoff_lat"`
	DropoffLon      float64 `json:"dropoff_lon"`
	PickupAt        string  `json:"pickup_at" binding:"required"` // RFC3339
	DistanceKm      float64 `json:"distance_km" binding:"gte=0"`
	DurationMinutes float64 `json:"duration_minutes" binding:"gte=0"`
}

type CreateBookingRequest struct {
	VehicleID    string          `json:"vehicle_id" binding:"required,uuid"`
	EstimateType string          `json:"estimate_type" binding:"omitempty,oneof=transfer provision"`
	Outbound     SegmentRequest  `json:"outbound" binding:"required"`
	Return       *SegmentRequest `json:"return"` // presence makes the booking a round trip
	StandardCost string          `json:"standard_cost" binding:"required"`
	FinalCost    string          `json:"final_cost" binding:"required"`
	AppliedRules json.RawMessage `json:"applied_rules"` // pricing trace from the estimate
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED ASSIGNED IN_PROGRESS COMPLETED CANCELLED"`
}

// --- Interface ---

type BookingService interface {
	CreateBooking(ctx context.Context, clientID string, req CreateBookingRequest) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, req UpdateBookingStatusRequest, userID string) (*model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	ListBookings(ctx context.Context, clientID string, status string, page, limit int) ([]model.Booking, int64, error)
}

type bookingService struct {
	db            *gorm.DB
	bookings      repository.BookingRepository
	txm           repository.TransactionManager
	notifications NotificationService
}

func NewBookingService(db *gorm.DB, bookings repository.BookingRepository, txm repository.TransactionManager, notifications NotificationService) BookingService {
	return &bookingService{db: db, bookings: bookings, txm: txm, notifications: notifications}
}

// --- Implementation ---

func (s *bookingService) CreateBooking(ctx context.Context, clientID string, req CreateBookingRequest) (*model.Booking, error) {
	client, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}

	outboundAt, err := time.Parse(time.RFC3339, req.Outbound.PickupAt)
	if err != nil {
		return nil, fmt.Errorf("invalid outbound pickup_at: %w", err)
	}

	standardCost, err := decimal.NewFromString(req.StandardCost)
	if err != nil {
		return nil, fmt.Errorf("invalid standard_cost: %w", err)
	}
	finalCost, err := decimal.NewFromString(req.FinalCost)
	if err != nil {
		return nil, fmt.Errorf("invalid final_cost: %w", err)
	}

	estimateType := req.EstimateType
	if estimateType == "" {
		estimateType = model.EstimateTransfer
	}

	booking := model.Booking{
		ClientID:        client,
		VehicleID:       vehicleID,
		Status:          model.BookingPending,
		EstimateType:    estimateType,
		PickupAddress:   req.Outbound.PickupAddress,
		DropoffAddress:  req.Outbound.DropoffAddress,
		PickupLat:       req.Outbound.PickupLat,
		PickupLon:       req.Outbound.PickupLon,
		DropoffLat:      req.Outbound.DropoffLat,
		DropoffLon:      req.Outbound.DropoffLon,
		PickupAt:        outboundAt,
		DistanceKm:      decimal.NewFromFloat(req.Outbound.DistanceKm),
		DurationMinutes: decimal.NewFromFloat(req.Outbound.DurationMinutes),
		StandardCost:    standardCost,
		FinalCost:       finalCost,
		AppliedRules:    string(req.AppliedRules),
		IsRoundTrip:     req.Return != nil,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.bookings.Create(txCtx, &booking); err != nil {
			return err
		}
		if req.Return == nil {
			return nil
		}

		returnAt, err := time.Parse(time.RFC3339, req.Return.PickupAt)
		if err != nil {
			return fmt.Errorf("invalid return pickup_at: %w", err)
		}
		if !returnAt.After(outboundAt) {
			return errors.New("return pickup must be after the outbound pickup")
		}

		segments := []model.BookingSegment{
			segmentFromRequest(booking.ID, model.SegmentOutbound, req.Outbound, outboundAt),
			segmentFromRequest(booking.ID, model.SegmentReturn, *req.Return, returnAt),
		}
		return s.bookings.CreateSegments(txCtx, segments)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	writeAudit(ctx, s.db, clientID, model.ActionCreateBooking, booking.ID.String(), booking.PickupAddress, req)
	s.notifications.Notify(ctx, client, model.NotifyBookingCreated,
		"Booking created",
		fmt.Sprintf("Your booking for %s is registered and awaiting confirmation.", outboundAt.Format("Jan 2 15:04")),
		map[string]string{"booking_id": booking.ID.String()})

	return s.bookings.FindByID(ctx, booking.ID)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, req UpdateBookingStatusRequest, userID string) (*model.Booking, error) {
	bookingID, err := uuid.Parse(id)
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

	if !model.CanTransitionBooking(booking.Status, req.Status) {
		return nil, fmt.Errorf("cannot transition booking from %s to %s", booking.Status, req.Status)
	}

	booking.Status = req.Status
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionUpdateBooking, booking.ID.String(), booking.Status, req)
	s.notifications.Notify(ctx, booking.ClientID, model.NotifyBookingStatus,
		"Booking "+booking.Status,
		fmt.Sprintf("Your booking of %s is now %s.", booking.PickupAt.Format("Jan 2 15:04"), booking.Status),
		map[string]string{"booking_id": booking.ID.String(), "status": booking.Status})

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	bookingID, err := uuid.Parse(id)
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
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, clientID string, status string, page, limit int) ([]model.Booking, int64, error) {
	var filter *uuid.UUID
	if clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid client id: %w", err)
		}
		filter = &id
	}
	return s.bookings.List(ctx, filter, status, page, limit)
}

func segmentFromRequest(bookingID uuid.UUID, direction string, req SegmentRequest, pickupAt time.Time) model.BookingSegment {
	return model.BookingSegment{
		BookingID:       bookingID,
		Direction:       direction,
		PickupAddress:   req.PickupAddress,
		DropoffAddress:  req.DropoffAddress,
		PickupLat:       req.PickupLat,
		PickupLon:       req.PickupLon,
		DropoffLat:      req.DropoffLat,
		DropoffLon:      req.DropoffLon,
		PickupAt:        pickupAt,
		DistanceKm:      decimal.NewFromFloat(req.DistanceKm),
		DurationMinutes: decimal.NewFromFloat(req.DurationMinutes),
	}
}
