package repository

import (
	"context"

	"vtc/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleRepository defines data access for vehicles and VAT rates.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Vehicle, int64, error)
	FindVATRate(ctx context.Context, estimateType string) (*model.VATRate, error)
	CreateVATRate(ctx context.Context, rate *model.VATRate) error
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vehicle{}).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := GetDB(ctx, r.db).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Vehicle{})
	if activeOnly {
		db = db.Where("active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) FindVATRate(ctx context.Context, estimateType string) (*model.VATRate, error) {
	var rate model.VATRate
	if err := GetDB(ctx, r.db).First(&rate, "estimate_type = ?", estimateType).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *vehicleRepository) CreateVATRate(ctx context.Context, rate *model.VATRate) error {
	return GetDB(ctx, r.db).Create(rate).Error
}
