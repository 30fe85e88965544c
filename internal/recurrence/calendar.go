package recurrence

import "time"

// isoWeekday returns the ISO weekday number, 1=Monday .. 7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// weekdaySet builds the effective weekday filter for daily recurrence:
// explicit weekdays if any are valid, otherwise the full week or Monday-Friday
// depending on includeWeekends.
func weekdaySet(weekdays []int, includeWeekends bool) map[int]bool {
	set := make(map[int]bool, 7)
	for _, d := range weekdays {
		if d >= 1 && d <= 7 {
			set[d] = true
		}
	}
	if len(set) > 0 {
		return set
	}

	last := 5
	if includeWeekends {
		last = 7
	}
	for d := 1; d <= last; d++ {
		set[d] = true
	}
	return set
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthAdd returns the year and month `months` calendar months after t's
// month.
func monthAdd(t time.Time, months int) (int, time.Month) {
	total := t.Year()*12 + int(t.Month()) - 1 + months
	return total / 12, time.Month(total%12 + 1)
}

// addMonthsClamped advances t by the given number of months, targeting
// dayOfMonth and clamping to the last valid day when the target day does not
// exist (e.g. the 31st in February).
func addMonthsClamped(t time.Time, months, dayOfMonth int) time.Time {
	year, month := monthAdd(t, months)
	day := dayOfMonth
	if dim := daysInMonth(year, month); day > dim {
		day = dim
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// nthWeekdayDay resolves the day-of-month of the nth given ISO weekday in a
// month. When the nth occurrence does not exist it falls back one week, and to
// the month's first day if that still underflows.
func nthWeekdayDay(year int, month time.Month, weekday, nth int) int {
	firstWd := isoWeekday(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	day := 1 + (weekday-firstWd+7)%7 + (nth-1)*7
	if day > daysInMonth(year, month) {
		day -= 7
	}
	if day < 1 {
		day = 1
	}
	return day
}

// daysBetween returns whole calendar days from a to b (both date-truncated).
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
