package recurrence

import (
	"log"
	"time"
)

// specificDateLayouts are tried in order when parsing literal datetime and
// exclusion entries. Layouts without a zone are interpreted in the template's
// location.
var specificDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type generator struct {
	tpl         Template
	cfg         Config
	start       time.Time // date-truncated start in the template's location
	loc         *time.Location
	occurrences []Occurrence
}

func newGenerator(tpl Template, cfg Config) *generator {
	loc := tpl.BaseTime.Location()
	start := time.Date(tpl.StartDate.Year(), tpl.StartDate.Month(), tpl.StartDate.Day(), 0, 0, 0, 0, loc)
	return &generator{tpl: tpl, cfg: cfg, start: start, loc: loc}
}

func (g *generator) full() bool {
	return len(g.occurrences) >= g.tpl.MaxOccurrences
}

// pastEnd reports whether the date lies beyond the template's end date
// (date-level comparison, end date inclusive).
func (g *generator) pastEnd(date time.Time) bool {
	if g.tpl.EndDate == nil {
		return false
	}
	end := time.Date(g.tpl.EndDate.Year(), g.tpl.EndDate.Month(), g.tpl.EndDate.Day(), 0, 0, 0, 0, g.loc)
	return dateOnly(date).After(end)
}

// at combines a date with the base booking's time-of-day.
func (g *generator) at(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		g.tpl.BaseTime.Hour(), g.tpl.BaseTime.Minute(), g.tpl.BaseTime.Second(), 0, g.loc)
}

func (g *generator) emit(t time.Time) {
	if g.full() {
		return
	}
	g.occurrences = append(g.occurrences, Occurrence{
		Number:      len(g.occurrences) + 1,
		ScheduledAt: t,
	})
}

// emitSlots emits one occurrence per configured time slot for the date, or a
// single occurrence at the base time when multi-slot is off. Each slot
// consumes one unit of remaining capacity.
func (g *generator) emitSlots(date time.Time) {
	if !g.cfg.EnableMultipleTimes || len(g.cfg.TimeSlots) == 0 {
		g.emit(g.at(date))
		return
	}
	for _, slot := range g.cfg.TimeSlots {
		if g.full() {
			return
		}
		hhmm, err := time.Parse("15:04", slot)
		if err != nil {
			log.Printf("recurrence: skipping invalid time slot %q: %v", slot, err)
			continue
		}
		g.emit(time.Date(date.Year(), date.Month(), date.Day(),
			hhmm.Hour(), hhmm.Minute(), 0, 0, g.loc))
	}
}

func (g *generator) interval() int {
	if g.cfg.FrequencyInterval < 1 {
		return 1
	}
	return g.cfg.FrequencyInterval
}

func (g *generator) daily() {
	set := weekdaySet(g.cfg.Weekdays, g.cfg.IncludeWeekends)
	for d := g.start; !g.full() && !g.pastEnd(d); d = d.AddDate(0, 0, 1) {
		if set[isoWeekday(d)] {
			g.emit(g.at(d))
		}
	}
}

func (g *generator) weekly() {
	step := 7 * g.interval()
	for d := g.start; !g.full() && !g.pastEnd(d); d = d.AddDate(0, 0, step) {
		g.emit(g.at(d))
	}
}

func (g *generator) monthly() {
	if g.cfg.MonthlyMode == MonthlySamePosition {
		g.monthlySamePosition()
		return
	}
	g.monthlySameDate()
}

func (g *generator) monthlySameDate() {
	targetDay := g.start.Day()
	for i := 0; !g.full(); i += g.interval() {
		d := addMonthsClamped(g.start, i, targetDay)
		if g.pastEnd(d) {
			return
		}
		g.emit(g.at(d))
	}
}

// monthlySamePosition preserves the "Nth weekday of the month" position of the
// start date (e.g. 2nd Tuesday), re-resolved in each target month.
func (g *generator) monthlySamePosition() {
	weekday := isoWeekday(g.start)
	nth := (g.start.Day()-1)/7 + 1

	for i := 0; !g.full(); i += g.interval() {
		year, month := monthAdd(g.start, i)
		day := nthWeekdayDay(year, month, weekday, nth)
		d := time.Date(year, month, day, 0, 0, 0, 0, g.loc)
		if g.pastEnd(d) {
			return
		}
		g.emit(g.at(d))
	}
}

func (g *generator) yearly() {
	year, month, day := g.start.Date()
	for i := 0; !g.full(); i += g.interval() {
		y := year + i
		d := day
		// Feb-29 anniversaries land on Feb-28 in non-leap years.
		if month == time.February && d == 29 && !isLeapYear(y) {
			d = 28
		}
		date := time.Date(y, month, d, 0, 0, 0, 0, g.loc)
		if g.pastEnd(date) {
			return
		}
		g.emit(g.at(date))
	}
}

func (g *generator) custom() {
	switch g.cfg.Pattern {
	case PatternDaysOfWeek:
		g.customDaysOfWeek()
	case PatternIntervalBased:
		g.customIntervalBased()
	case PatternSpecificDates:
		g.customSpecificDates()
	}
}

// customDaysOfWeek walks day by day like daily recurrence, additionally gated
// by a weekly-interval counter: only weeks where week_count % interval == 0
// produce occurrences.
func (g *generator) customDaysOfWeek() {
	set := make(map[int]bool, len(g.cfg.Weekdays))
	for _, d := range g.cfg.Weekdays {
		if d >= 1 && d <= 7 {
			set[d] = true
		}
	}
	if len(set) == 0 {
		return
	}

	interval := g.interval()
	for d := g.start; !g.full() && !g.pastEnd(d); d = d.AddDate(0, 0, 1) {
		week := daysBetween(g.start, d) / 7
		if week%interval == 0 && set[isoWeekday(d)] {
			g.emitSlots(d)
		}
	}
}

func (g *generator) customIntervalBased() {
	for d := g.start; !g.full() && !g.pastEnd(d); d = d.AddDate(0, 0, g.cfg.IntervalDays) {
		g.emitSlots(d)
	}
}

// customSpecificDates consumes literal datetime entries. Malformed entries are
// logged and dropped; entries beyond the end date are skipped.
func (g *generator) customSpecificDates() {
	for _, raw := range g.cfg.SpecificDates {
		if g.full() {
			return
		}
		t, ok := parseDateTimeIn(raw, g.loc)
		if !ok {
			log.Printf("recurrence: skipping malformed specific date %q", raw)
			continue
		}
		if g.pastEnd(t) {
			continue
		}
		if g.cfg.EnableMultipleTimes && len(g.cfg.TimeSlots) > 0 {
			g.emitSlots(t)
		} else {
			g.emit(t)
		}
	}
}

// parseDateTimeIn parses an ISO datetime string, normalizing zone-less layouts
// into loc.
func parseDateTimeIn(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range specificDateLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.In(loc), true
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
