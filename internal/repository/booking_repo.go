package repository

import (
	"context"

	"vtc/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRepository defines data access for bookings and their segments.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, clientID *uuid.UUID, status string, page, limit int) ([]model.Booking, int64, error)
	CreateSegments(ctx context.Context, segments []model.BookingSegment) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return GetDB(ctx, r.db).Create(booking).Error
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return GetDB(ctx, r.db).Save(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := GetDB(ctx, r.db).
		Preload("Vehicle").Preload("Segments").Preload("PromoCode").
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, clientID *uuid.UUID, status string, page, limit int) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Booking{})
	if clientID != nil {
		db = db.Where("client_id = ?", *clientID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Vehicle").Preload("Segments").
		Order("pickup_at desc").
		Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) CreateSegments(ctx context.Context, segments []model.BookingSegment) error {
	if len(segments) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&segments).Error
}
