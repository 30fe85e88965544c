package database

import (
	"log"

	"vtc/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Role{},
		&model.Permission{},
		&model.Vehicle{},
		&model.VATRate{},
		&model.Adjustment{},
		&model.TariffPackage{},
		&model.PromoCode{},
		&model.TariffRule{},
		&model.Booking{},
		&model.BookingSegment{},
		&model.RecurringBookingTemplate{},
		&model.RecurrenceConfig{},
		&model.RecurringBookingOccurrence{},
		&model.Notification{},
		&model.Invoice{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
