// Package recurrence expands a recurring-booking template into an ordered
// sequence of scheduled datetimes: daily, weekly, monthly, yearly and custom
// patterns, with exclusion-date filtering. Pure calendar arithmetic, no
// storage.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// Type selects the generation strategy.
type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
	TypeCustom  Type = "custom"
)

// MonthlyMode selects monthly sub-behavior.
type MonthlyMode string

const (
	MonthlySameDate     MonthlyMode = "same_date"
	MonthlySamePosition MonthlyMode = "same_position"
)

// Pattern selects custom sub-behavior.
type Pattern string

const (
	PatternDaysOfWeek    Pattern = "days_of_week"
	PatternIntervalBased Pattern = "interval_based"
	PatternSpecificDates Pattern = "specific_dates"
)

// Template bounds the generation run. BaseTime supplies the time-of-day for
// every occurrence (the base booking's pickup time) unless a custom multi-slot
// configuration overrides it.
type Template struct {
	Type           Type
	StartDate      time.Time // date component only is used
	EndDate        *time.Time
	MaxOccurrences int
	BaseTime       time.Time
}

// Config carries the type-specific parameters; only the fields relevant to
// the template's type are read.
type Config struct {
	IncludeWeekends     bool  // daily
	Weekdays            []int // daily, custom days_of_week; 1=Monday .. 7=Sunday
	FrequencyInterval   int   // weekly, monthly, yearly, custom days_of_week
	MonthlyMode         MonthlyMode
	Pattern             Pattern
	IntervalDays        int      // custom interval_based
	SpecificDates       []string // custom specific_dates, ISO datetimes
	EnableMultipleTimes bool
	TimeSlots           []string // "HH:MM"
	ExcludeDates        []string // ISO dates
}

// Occurrence is one scheduled instance. Number is 1-based and contiguous.
type Occurrence struct {
	Number      int
	ScheduledAt time.Time
}

var (
	ErrPatternRequired      = errors.New("pattern_type is required for custom recurrence")
	ErrIntervalDaysRequired = errors.New("interval_days is required for interval_based pattern")
	ErrTimeSlotsRequired    = errors.New("time_slots are required when multiple times are enabled")
)

// Validate surfaces configuration errors before any generation runs.
func Validate(tpl Template, cfg Config) error {
	switch tpl.Type {
	case TypeDaily, TypeWeekly, TypeMonthly, TypeYearly:
	case TypeCustom:
		switch cfg.Pattern {
		case PatternDaysOfWeek, PatternSpecificDates:
		case PatternIntervalBased:
			if cfg.IntervalDays < 1 {
				return ErrIntervalDaysRequired
			}
		case "":
			return ErrPatternRequired
		default:
			return fmt.Errorf("unsupported pattern type %q", cfg.Pattern)
		}
		if cfg.EnableMultipleTimes && len(cfg.TimeSlots) == 0 {
			return ErrTimeSlotsRequired
		}
	default:
		return fmt.Errorf("unsupported recurrence type %q", tpl.Type)
	}
	return nil
}

// Generate expands the template into ordered occurrences, capped at
// MaxOccurrences and bounded by EndDate when set.
func Generate(tpl Template, cfg Config) ([]Occurrence, error) {
	if err := Validate(tpl, cfg); err != nil {
		return nil, err
	}
	if tpl.MaxOccurrences <= 0 {
		return nil, nil
	}

	gen := newGenerator(tpl, cfg)

	switch tpl.Type {
	case TypeDaily:
		gen.daily()
	case TypeWeekly:
		gen.weekly()
	case TypeMonthly:
		gen.monthly()
	case TypeYearly:
		gen.yearly()
	case TypeCustom:
		gen.custom()
	}

	return gen.occurrences, nil
}
