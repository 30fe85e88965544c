package recurrence

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// baseAt gives every template a 09:30 pickup time.
func baseAt() time.Time {
	return time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)
}

func tpl(typ Type, start time.Time, max int) Template {
	return Template{Type: typ, StartDate: start, MaxOccurrences: max, BaseTime: baseAt()}
}

func wantDates(t *testing.T, got []Occurrence, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(want), got)
	}
	for i, occ := range got {
		if occ.Number != i+1 {
			t.Errorf("occurrence[%d].Number = %d, want %d", i, occ.Number, i+1)
		}
		wy, wm, wd := want[i].Date()
		gy, gm, gd := occ.ScheduledAt.Date()
		if wy != gy || wm != gm || wd != gd {
			t.Errorf("occurrence[%d] on %v, want %v", i, occ.ScheduledAt, want[i])
		}
	}
}

func TestGenerate_DailyWeekdaysOnly(t *testing.T) {
	// 2025-01-06 is a Monday; weekends skipped entirely.
	got, err := Generate(tpl(TypeDaily, date(2025, 1, 6), 5), Config{IncludeWeekends: false})
	if err != nil {
		t.Fatal(err)
	}

	wantDates(t, got, []time.Time{
		date(2025, 1, 6), date(2025, 1, 7), date(2025, 1, 8), date(2025, 1, 9), date(2025, 1, 10),
	})
}

func TestGenerate_DailySpansWeekend(t *testing.T) {
	// Friday start: next weekday occurrence is Monday.
	got, err := Generate(tpl(TypeDaily, date(2025, 1, 10), 2), Config{})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 10), date(2025, 1, 13)})
}

func TestGenerate_DailyIncludeWeekends(t *testing.T) {
	got, err := Generate(tpl(TypeDaily, date(2025, 1, 10), 3), Config{IncludeWeekends: true})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 10), date(2025, 1, 11), date(2025, 1, 12)})
}

func TestGenerate_DailyExplicitWeekdays(t *testing.T) {
	// Only Wednesdays (3), starting Monday 2025-01-06.
	got, err := Generate(tpl(TypeDaily, date(2025, 1, 6), 2), Config{Weekdays: []int{3}})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 8), date(2025, 1, 15)})
}

func TestGenerate_DailyRespectsEndDate(t *testing.T) {
	template := tpl(TypeDaily, date(2025, 1, 6), 50)
	template.EndDate = datePtr(2025, 1, 8)

	got, err := Generate(template, Config{})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 6), date(2025, 1, 7), date(2025, 1, 8)})
}

func TestGenerate_Weekly(t *testing.T) {
	got, err := Generate(tpl(TypeWeekly, date(2025, 1, 6), 3), Config{FrequencyInterval: 2})
	if err != nil {
		t.Fatal(err)
	}
	// Every 2 weeks, weekday inherited from the start date (Monday).
	wantDates(t, got, []time.Time{date(2025, 1, 6), date(2025, 1, 20), date(2025, 2, 3)})
}

func TestGenerate_MonthlySameDateClampsMonthEnd(t *testing.T) {
	got, err := Generate(tpl(TypeMonthly, date(2025, 1, 31), 2),
		Config{MonthlyMode: MonthlySameDate, FrequencyInterval: 1})
	if err != nil {
		t.Fatal(err)
	}
	// February 2025 has 28 days.
	wantDates(t, got, []time.Time{date(2025, 1, 31), date(2025, 2, 28)})
}

func TestGenerate_MonthlySameDateLeapYear(t *testing.T) {
	got, err := Generate(tpl(TypeMonthly, date(2024, 1, 31), 3),
		Config{MonthlyMode: MonthlySameDate, FrequencyInterval: 1})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2024, 1, 31), date(2024, 2, 29), date(2024, 3, 31)})
}

func TestGenerate_MonthlySamePosition(t *testing.T) {
	// 2025-01-14 is the 2nd Tuesday of January.
	got, err := Generate(tpl(TypeMonthly, date(2025, 1, 14), 3),
		Config{MonthlyMode: MonthlySamePosition, FrequencyInterval: 1})
	if err != nil {
		t.Fatal(err)
	}
	// 2nd Tuesdays: Feb 11, Mar 11.
	wantDates(t, got, []time.Time{date(2025, 1, 14), date(2025, 2, 11), date(2025, 3, 11)})
}

func TestGenerate_MonthlySamePositionFallsBackOneWeek(t *testing.T) {
	// 2025-01-31 is the 5th Friday of January; February has no 5th Friday, so
	// the 4th Friday (Feb 28) is used.
	got, err := Generate(tpl(TypeMonthly, date(2025, 1, 31), 2),
		Config{MonthlyMode: MonthlySamePosition, FrequencyInterval: 1})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 31), date(2025, 2, 28)})
}

func TestGenerate_YearlyFeb29(t *testing.T) {
	got, err := Generate(tpl(TypeYearly, date(2024, 2, 29), 3), Config{FrequencyInterval: 1})
	if err != nil {
		t.Fatal(err)
	}
	// Non-leap anniversaries remap to Feb 28.
	wantDates(t, got, []time.Time{date(2024, 2, 29), date(2025, 2, 28), date(2026, 2, 28)})
}

func TestGenerate_YearlyInterval(t *testing.T) {
	got, err := Generate(tpl(TypeYearly, date(2025, 6, 15), 3), Config{FrequencyInterval: 2})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 6, 15), date(2027, 6, 15), date(2029, 6, 15)})
}

func TestGenerate_CustomDaysOfWeekWithInterval(t *testing.T) {
	// Mondays only, every 2nd week, starting Monday 2025-01-06.
	got, err := Generate(tpl(TypeCustom, date(2025, 1, 6), 3), Config{
		Pattern:           PatternDaysOfWeek,
		Weekdays:          []int{1},
		FrequencyInterval: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 6), date(2025, 1, 20), date(2025, 2, 3)})
}

func TestGenerate_CustomIntervalBased(t *testing.T) {
	got, err := Generate(tpl(TypeCustom, date(2025, 1, 6), 3), Config{
		Pattern:      PatternIntervalBased,
		IntervalDays: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	wantDates(t, got, []time.Time{date(2025, 1, 6), date(2025, 1, 16), date(2025, 1, 26)})
}

func TestGenerate_CustomMultipleTimeSlots(t *testing.T) {
	got, err := Generate(tpl(TypeCustom, date(2025, 1, 6), 3), Config{
		Pattern:             PatternIntervalBased,
		IntervalDays:        7,
		EnableMultipleTimes: true,
		TimeSlots:           []string{"08:00", "18:30"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Each slot consumes one occurrence: two on day 1, one on day 8.
	if len(got) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(got))
	}
	if got[0].ScheduledAt.Hour() != 8 || got[1].ScheduledAt.Hour() != 18 || got[1].ScheduledAt.Minute() != 30 {
		t.Errorf("time slots not applied: %v %v", got[0].ScheduledAt, got[1].ScheduledAt)
	}
	if got[2].ScheduledAt.Day() != 13 || got[2].ScheduledAt.Hour() != 8 {
		t.Errorf("third occurrence = %v, want Jan 13 08:00", got[2].ScheduledAt)
	}
}

func TestGenerate_CustomSpecificDates(t *testing.T) {
	template := tpl(TypeCustom, date(2025, 1, 1), 10)
	template.EndDate = datePtr(2025, 3, 1)

	got, err := Generate(template, Config{
		Pattern: PatternSpecificDates,
		SpecificDates: []string{
			"2025-01-15T10:00:00",
			"not-a-date", // logged and dropped
			"2025-02-20T14:00:00",
			"2025-04-01T09:00:00", // beyond end date, skipped
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	wantDates(t, got, []time.Time{date(2025, 1, 15), date(2025, 2, 20)})
	if got[0].ScheduledAt.Hour() != 10 {
		t.Errorf("specific date keeps its own time-of-day, got %v", got[0].ScheduledAt)
	}
}

func TestGenerate_TimeOfDayFromBaseBooking(t *testing.T) {
	got, err := Generate(tpl(TypeWeekly, date(2025, 1, 6), 2), Config{FrequencyInterval: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, occ := range got {
		if occ.ScheduledAt.Hour() != 9 || occ.ScheduledAt.Minute() != 30 {
			t.Errorf("occurrence %d not at base time 09:30: %v", occ.Number, occ.ScheduledAt)
		}
	}
}

func TestGenerate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		cfg     Config
		wantErr error
	}{
		{"missing pattern", TypeCustom, Config{}, ErrPatternRequired},
		{"missing interval days", TypeCustom, Config{Pattern: PatternIntervalBased}, ErrIntervalDaysRequired},
		{"multi time without slots", TypeCustom,
			Config{Pattern: PatternDaysOfWeek, Weekdays: []int{1}, EnableMultipleTimes: true}, ErrTimeSlotsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tpl(tt.typ, date(2025, 1, 6), 5), tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_UnsupportedTypes(t *testing.T) {
	if _, err := Generate(tpl("fortnightly", date(2025, 1, 6), 5), Config{}); err == nil {
		t.Error("unknown recurrence type must abort generation")
	}
	if _, err := Generate(tpl(TypeCustom, date(2025, 1, 6), 5), Config{Pattern: "lunar"}); err == nil {
		t.Error("unknown pattern type must abort generation")
	}
}

func TestGenerate_ZeroMaxOccurrences(t *testing.T) {
	got, err := Generate(tpl(TypeDaily, date(2025, 1, 6), 0), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no occurrences, got %d", len(got))
	}
}
