package recurrence

import "time"

// ApplyExclusions removes every occurrence whose calendar date appears in
// excludeDates (time-of-day ignored) and renumbers the survivors sequentially
// from 1, preserving order. Malformed exclusion entries are silently skipped;
// with no usable exclusions the input is returned unchanged.
func ApplyExclusions(occurrences []Occurrence, excludeDates []string) []Occurrence {
	excluded := make(map[string]bool, len(excludeDates))
	for _, raw := range excludeDates {
		if t, ok := parseDateTimeIn(raw, time.UTC); ok {
			excluded[t.Format("2006-01-02")] = true
		}
	}
	if len(excluded) == 0 {
		return occurrences
	}

	kept := make([]Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if excluded[occ.ScheduledAt.Format("2006-01-02")] {
			continue
		}
		occ.Number = len(kept) + 1
		kept = append(kept, occ)
	}
	return kept
}
