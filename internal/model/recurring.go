package model

import (
	"time"

	"github.com/google/uuid"
)

// RecurrenceType enum constants
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
	RecurrenceCustom  = "custom"
)

// MonthlyType enum constants
const (
	MonthlySameDate     = "same_date"
	MonthlySamePosition = "same_position"
)

// PatternType enum constants (custom recurrence)
const (
	PatternDaysOfWeek    = "days_of_week"
	PatternIntervalBased = "interval_based"
	PatternSpecificDates = "specific_dates"
)

// RecurringBookingTemplate seeds a series of bookings from a base booking.
// Created on recurrence preview, deactivated once final booking creation
// completes: consumed occurrences become real bookings, unconsumed ones are
// deleted.
type RecurringBookingTemplate struct {
	ID             uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BaseBookingID  uuid.UUID                    `gorm:"type:uuid;not null;index" json:"base_booking_id"`
	BaseBooking    *Booking                     `gorm:"foreignKey:BaseBookingID" json:"base_booking,omitempty"`
	RecurrenceType string                       `gorm:"type:varchar(20);not null" json:"recurrence_type"` // daily, weekly, monthly, yearly, custom
	StartDate      time.Time                    `gorm:"type:date;not null" json:"start_date"`
	EndDate        *time.Time                   `gorm:"type:date" json:"end_date"`
	MaxOccurrences int                          `gorm:"not null" json:"max_occurrences"`
	IsActive       bool                         `gorm:"default:true" json:"is_active"`
	Config         *RecurrenceConfig            `gorm:"foreignKey:TemplateID" json:"config,omitempty"`
	Occurrences    []RecurringBookingOccurrence `gorm:"foreignKey:TemplateID" json:"occurrences,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// RecurrenceConfig holds the type-specific recurrence parameters, 1:1 with its
// template. Only the fields relevant to the template's recurrence type are
// meaningful.
type RecurrenceConfig struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TemplateID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"template_id"`
	IncludeWeekends     bool      `gorm:"default:false" json:"include_weekends"`
	Weekdays            []int     `gorm:"serializer:json;type:jsonb" json:"weekdays"` // 1=Monday .. 7=Sunday
	FrequencyInterval   int       `gorm:"not null;default:1" json:"frequency_interval"`
	MonthlyType         string    `gorm:"type:varchar(20)" json:"monthly_type"` // same_date, same_position
	PatternType         string    `gorm:"type:varchar(20)" json:"pattern_type"` // days_of_week, interval_based, specific_dates
	IntervalDays        *int      `json:"interval_days"`
	SpecificDates       []string  `gorm:"serializer:json;type:jsonb" json:"specific_dates"`
	EnableMultipleTimes bool      `gorm:"default:false" json:"enable_multiple_times"`
	TimeSlots           []string  `gorm:"serializer:json;type:jsonb" json:"time_slots"` // "HH:MM"
	ExcludeDates        []string  `gorm:"serializer:json;type:jsonb" json:"exclude_dates"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RecurringBookingOccurrence is one scheduled instance of a template. BookingID
// is set when the occurrence is materialized into a real booking.
type RecurringBookingOccurrence struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TemplateID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"template_id"`
	OccurrenceNumber  int        `gorm:"not null" json:"occurrence_number"` // 1-based, renumbered after exclusion filtering
	ScheduledDatetime time.Time  `gorm:"not null" json:"scheduled_datetime"`
	BookingID         *uuid.UUID `gorm:"type:uuid" json:"booking_id"`
	CreatedAt         time.Time  `json:"created_at"`
}
