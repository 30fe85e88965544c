package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtc/internal/model"
	"vtc/internal/recurrence"
	"vtc/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type RecurrenceConfigRequest struct {
	IncludeWeekends     bool     `json:"include_weekends"`
	Weekdays            []int    `json:"weekdays" binding:"omitempty,dive,min=1,max=7"`
	FrequencyInterval   int      `json:"frequency_interval" binding:"omitempty,min=1"`
	MonthlyType         string   `json:"monthly_type" binding:"omitempty,oneof=same_date same_position"`
	PatternType         string   `json:"pattern_type" binding:"omitempty,oneof=days_of_week interval_based specific_dates"`
	IntervalDays        *int     `json:"interval_days" binding:"omitempty,min=1"`
	SpecificDates       []string `json:"specific_dates"`
	EnableMultipleTimes bool     `json:"enable_multiple_times"`
	TimeSlots           []string `json:"time_slots"`
	ExcludeDates        []string `json:"exclude_dates"`
}

type PreviewRecurringRequest struct {
	BaseBookingID  string                  `json:"base_booking_id" binding:"required,uuid"`
	RecurrenceType string                  `json:"recurrence_type" binding:"required,oneof=daily weekly monthly yearly custom"`
	StartDate      string                  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate        string                  `json:"end_date"`                      // YYYY-MM-DD, optional
	MaxOccurrences int                     `json:"max_occurrences" binding:"required,min=1,max=365"`
	Config         RecurrenceConfigRequest `json:"config"`
}

type FinalizeRecurringRequest struct {
	// Occurrence numbers the client kept after reviewing the preview. Empty
	// means keep every generated occurrence.
	OccurrenceNumbers []int `json:"occurrence_numbers"`
}

type OccurrencePreview struct {
	Number      int       `json:"number"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type PreviewRecurringResponse struct {
	TemplateID  string              `json:"template_id"`
	Occurrences []OccurrencePreview `json:"occurrences"`
}

// --- Interface ---

type RecurringService interface {
	PreviewOccurrences(ctx context.Context, userID string, req PreviewRecurringRequest) (*PreviewRecurringResponse, error)
	FinalizeBookings(ctx context.Context, userID, templateID string, req FinalizeRecurringRequest) ([]model.Booking, error)
	GetTemplate(ctx context.Context, id string) (*model.RecurringBookingTemplate, error)
	ListTemplates(ctx context.Context, activeOnly bool, page, limit int) ([]model.RecurringBookingTemplate, int64, error)
	CancelTemplate(ctx context.Context, userID, templateID string) error
}

type recurringService struct {
	db            *gorm.DB
	recurring     repository.RecurringRepository
	bookings      repository.BookingRepository
	txm           repository.TransactionManager
	notifications NotificationService
}

func NewRecurringService(db *gorm.DB, recurring repository.RecurringRepository, bookings repository.BookingRepository, txm repository.TransactionManager, notifications NotificationService) RecurringService {
	return &recurringService{db: db, recurring: recurring, bookings: bookings, txm: txm, notifications: notifications}
}

// --- Implementation ---

// PreviewOccurrences expands the recurrence into concrete datetimes, persists
// the template with its config and occurrence rows in one transaction, and
// returns the schedule for client review. Nothing becomes a real booking yet.
func (s *recurringService) PreviewOccurrences(ctx context.Context, userID string, req PreviewRecurringRequest) (*PreviewRecurringResponse, error) {
	baseID, err := uuid.Parse(req.BaseBookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid base booking id: %w", err)
	}

	base, err := s.bookings.FindByID(ctx, baseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("base booking not found")
		}
		return nil, fmt.Errorf("failed to fetch base booking: %w", err)
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date (expected YYYY-MM-DD): %w", err)
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date (expected YYYY-MM-DD): %w", err)
		}
		if parsed.Before(startDate) {
			return nil, fmt.Errorf("end_date must not precede start_date")
		}
		endDate = &parsed
	}

	tpl := recurrence.Template{
		Type:           recurrence.Type(req.RecurrenceType),
		StartDate:      startDate,
		EndDate:        endDate,
		MaxOccurrences: req.MaxOccurrences,
		BaseTime:       base.PickupAt,
	}
	cfg := recurrence.Config{
		IncludeWeekends:     req.Config.IncludeWeekends,
		Weekdays:            req.Config.Weekdays,
		FrequencyInterval:   req.Config.FrequencyInterval,
		MonthlyMode:         recurrence.MonthlyMode(req.Config.MonthlyType),
		Pattern:             recurrence.Pattern(req.Config.PatternType),
		SpecificDates:       req.Config.SpecificDates,
		EnableMultipleTimes: req.Config.EnableMultipleTimes,
		TimeSlots:           req.Config.TimeSlots,
		ExcludeDates:        req.Config.ExcludeDates,
	}
	if req.Config.IntervalDays != nil {
		cfg.IntervalDays = *req.Config.IntervalDays
	}

	generated, err := recurrence.Generate(tpl, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence configuration: %w", err)
	}
	occurrences := recurrence.ApplyExclusions(generated, cfg.ExcludeDates)
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("recurrence produces no occurrences")
	}

	template := model.RecurringBookingTemplate{
		BaseBookingID:  base.ID,
		RecurrenceType: req.RecurrenceType,
		StartDate:      startDate,
		EndDate:        endDate,
		MaxOccurrences: req.MaxOccurrences,
		IsActive:       true,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recurring.CreateTemplate(txCtx, &template); err != nil {
			return err
		}

		config := model.RecurrenceConfig{
			TemplateID:          template.ID,
			IncludeWeekends:     req.Config.IncludeWeekends,
			Weekdays:            req.Config.Weekdays,
			FrequencyInterval:   maxInt(req.Config.FrequencyInterval, 1),
			MonthlyType:         req.Config.MonthlyType,
			PatternType:         req.Config.PatternType,
			IntervalDays:        req.Config.IntervalDays,
			SpecificDates:       req.Config.SpecificDates,
			EnableMultipleTimes: req.Config.EnableMultipleTimes,
			TimeSlots:           req.Config.TimeSlots,
			ExcludeDates:        req.Config.ExcludeDates,
		}
		if err := s.recurring.CreateConfig(txCtx, &config); err != nil {
			return err
		}

		rows := make([]model.RecurringBookingOccurrence, 0, len(occurrences))
		for _, occ := range occurrences {
			rows = append(rows, model.RecurringBookingOccurrence{
				TemplateID:        template.ID,
				OccurrenceNumber:  occ.Number,
				ScheduledDatetime: occ.ScheduledAt,
			})
		}
		return s.recurring.CreateOccurrences(txCtx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save recurring template: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionCreateRecurringTemplate, template.ID.String(), req.RecurrenceType, req)

	previews := make([]OccurrencePreview, 0, len(occurrences))
	for _, occ := range occurrences {
		previews = append(previews, OccurrencePreview{Number: occ.Number, ScheduledAt: occ.ScheduledAt})
	}
	return &PreviewRecurringResponse{TemplateID: template.ID.String(), Occurrences: previews}, nil
}

// FinalizeBookings materializes the kept occurrences of a previewed template
// into real bookings cloned from the base booking, deletes the rest, and
// deactivates the template. Everything happens in one transaction.
func (s *recurringService) FinalizeBookings(ctx context.Context, userID, templateID string, req FinalizeRecurringRequest) ([]model.Booking, error) {
	tplID, err := uuid.Parse(templateID)
	if err != nil {
		return nil, fmt.Errorf("invalid template id: %w", err)
	}

	template, err := s.recurring.FindTemplateByID(ctx, tplID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recurring template not found")
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	if !template.IsActive {
		return nil, fmt.Errorf("recurring template is no longer active")
	}
	if template.BaseBooking == nil {
		return nil, fmt.Errorf("template has no base booking")
	}

	keep := make(map[int]bool, len(req.OccurrenceNumbers))
	for _, n := range req.OccurrenceNumbers {
		keep[n] = true
	}

	var created []model.Booking
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		for _, occ := range template.Occurrences {
			if occ.BookingID != nil {
				continue // already materialized
			}
			if len(keep) > 0 && !keep[occ.OccurrenceNumber] {
				continue
			}

			booking := cloneBookingAt(*template.BaseBooking, occ.ScheduledDatetime, template.ID)
			if err := s.bookings.Create(txCtx, &booking); err != nil {
				return err
			}
			if err := s.recurring.LinkOccurrenceBooking(txCtx, occ.ID, booking.ID); err != nil {
				return err
			}
			created = append(created, booking)
		}

		if len(created) == 0 {
			return fmt.Errorf("no occurrences selected")
		}

		if err := s.recurring.DeleteUnmaterializedOccurrences(txCtx, template.ID); err != nil {
			return err
		}
		return s.recurring.DeactivateTemplate(txCtx, template.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize recurring bookings: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionFinalizeRecurringBookings, template.ID.String(),
		fmt.Sprintf("%d bookings", len(created)), req)
	s.notifications.Notify(ctx, template.BaseBooking.ClientID, model.NotifyRecurringCreated,
		"Recurring bookings created",
		fmt.Sprintf("%d bookings were created from your recurring schedule.", len(created)),
		map[string]string{"template_id": template.ID.String()})

	return created, nil
}

func (s *recurringService) GetTemplate(ctx context.Context, id string) (*model.RecurringBookingTemplate, error) {
	tplID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid template id: %w", err)
	}
	template, err := s.recurring.FindTemplateByID(ctx, tplID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recurring template not found")
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return template, nil
}

func (s *recurringService) ListTemplates(ctx context.Context, activeOnly bool, page, limit int) ([]model.RecurringBookingTemplate, int64, error) {
	return s.recurring.ListTemplates(ctx, activeOnly, page, limit)
}

// CancelTemplate drops every occurrence not yet turned into a booking and
// deactivates the template. Already-materialized bookings are untouched.
func (s *recurringService) CancelTemplate(ctx context.Context, userID, templateID string) error {
	tplID, err := uuid.Parse(templateID)
	if err != nil {
		return fmt.Errorf("invalid template id: %w", err)
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recurring.DeleteUnmaterializedOccurrences(txCtx, tplID); err != nil {
			return err
		}
		return s.recurring.DeactivateTemplate(txCtx, tplID)
	})
	if err != nil {
		return fmt.Errorf("failed to cancel recurring template: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionCancelRecurringTemplate, templateID, "", nil)
	return nil
}

// cloneBookingAt copies the base booking onto a new pickup datetime, resetting
// identity, status and promo linkage.
func cloneBookingAt(base model.Booking, scheduledAt time.Time, templateID uuid.UUID) model.Booking {
	return model.Booking{
		ClientID:            base.ClientID,
		VehicleID:           base.VehicleID,
		Status:              model.BookingPending,
		EstimateType:        base.EstimateType,
		PickupAddress:       base.PickupAddress,
		DropoffAddress:      base.DropoffAddress,
		PickupLat:           base.PickupLat,
		PickupLon:           base.PickupLon,
		DropoffLat:          base.DropoffLat,
		DropoffLon:          base.DropoffLon,
		PickupAt:            scheduledAt,
		DistanceKm:          base.DistanceKm,
		DurationMinutes:     base.DurationMinutes,
		StandardCost:        base.StandardCost,
		FinalCost:           base.FinalCost,
		AppliedRules:        base.AppliedRules,
		IsRoundTrip:         false, // recurrence clones the outbound leg only
		RecurringTemplateID: &templateID,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
