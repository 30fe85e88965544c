package repository

import (
	"context"

	"vtc/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecurringRepository defines data access for recurring booking templates,
// their configs and generated occurrences.
type RecurringRepository interface {
	CreateTemplate(ctx context.Context, tpl *model.RecurringBookingTemplate) error
	CreateConfig(ctx context.Context, cfg *model.RecurrenceConfig) error
	CreateOccurrences(ctx context.Context, occs []model.RecurringBookingOccurrence) error
	FindTemplateByID(ctx context.Context, id uuid.UUID) (*model.RecurringBookingTemplate, error)
	ListTemplates(ctx context.Context, activeOnly bool, page, limit int) ([]model.RecurringBookingTemplate, int64, error)
	DeactivateTemplate(ctx context.Context, id uuid.UUID) error
	LinkOccurrenceBooking(ctx context.Context, occurrenceID, bookingID uuid.UUID) error
	DeleteUnmaterializedOccurrences(ctx context.Context, templateID uuid.UUID) error
}

type recurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) RecurringRepository {
	return &recurringRepository{db: db}
}

func (r *recurringRepository) CreateTemplate(ctx context.Context, tpl *model.RecurringBookingTemplate) error {
	return GetDB(ctx, r.db).Create(tpl).Error
}

func (r *recurringRepository) CreateConfig(ctx context.Context, cfg *model.RecurrenceConfig) error {
	return GetDB(ctx, r.db).Create(cfg).Error
}

func (r *recurringRepository) CreateOccurrences(ctx context.Context, occs []model.RecurringBookingOccurrence) error {
	if len(occs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&occs).Error
}

func (r *recurringRepository) FindTemplateByID(ctx context.Context, id uuid.UUID) (*model.RecurringBookingTemplate, error) {
	var tpl model.RecurringBookingTemplate
	if err := GetDB(ctx, r.db).
		Preload("Config").
		Preload("Occurrences", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurrence_number asc")
		}).
		Preload("BaseBooking").Preload("BaseBooking.Segments").
		First(&tpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *recurringRepository) ListTemplates(ctx context.Context, activeOnly bool, page, limit int) ([]model.RecurringBookingTemplate, int64, error) {
	var templates []model.RecurringBookingTemplate
	var total int64

	db := GetDB(ctx, r.db).Model(&model.RecurringBookingTemplate{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Config").
		Order("created_at desc").
		Offset(offset).Limit(limit).Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (r *recurringRepository) DeactivateTemplate(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.RecurringBookingTemplate{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *recurringRepository) LinkOccurrenceBooking(ctx context.Context, occurrenceID, bookingID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.RecurringBookingOccurrence{}).
		Where("id = ?", occurrenceID).
		Update("booking_id", bookingID).Error
}

// DeleteUnmaterializedOccurrences removes occurrences never linked to a real
// booking, used when finalizing or cancelling a template.
func (r *recurringRepository) DeleteUnmaterializedOccurrences(ctx context.Context, templateID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("template_id = ? AND booking_id IS NULL", templateID).
		Delete(&model.RecurringBookingOccurrence{}).Error
}
