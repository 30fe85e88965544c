package recurrence

import (
	"reflect"
	"testing"
	"time"
)

func occurrences(dates ...time.Time) []Occurrence {
	occs := make([]Occurrence, len(dates))
	for i, d := range dates {
		occs[i] = Occurrence{Number: i + 1, ScheduledAt: d}
	}
	return occs
}

func TestApplyExclusions_EmptyListReturnsInputUnchanged(t *testing.T) {
	input := occurrences(date(2025, 1, 6), date(2025, 1, 7), date(2025, 1, 8))

	got := ApplyExclusions(input, nil)
	if !reflect.DeepEqual(got, input) {
		t.Errorf("empty exclusion list must return the input unchanged")
	}

	got = ApplyExclusions(input, []string{"garbage", "also-not-a-date"})
	if !reflect.DeepEqual(got, input) {
		t.Errorf("all-malformed exclusion list must return the input unchanged")
	}
}

func TestApplyExclusions_RemovesMatchingDatesAndRenumbers(t *testing.T) {
	input := occurrences(
		date(2025, 1, 6), date(2025, 1, 7), date(2025, 1, 8), date(2025, 1, 9),
	)

	got := ApplyExclusions(input, []string{"2025-01-07", "2025-01-09"})

	if len(got) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(got))
	}
	if got[0].ScheduledAt.Day() != 6 || got[1].ScheduledAt.Day() != 8 {
		t.Errorf("wrong occurrences kept: %v", got)
	}
	for i, occ := range got {
		if occ.Number != i+1 {
			t.Errorf("occurrence[%d].Number = %d, want %d (gapless renumbering)", i, occ.Number, i+1)
		}
	}
}

func TestApplyExclusions_IgnoresTimeOfDay(t *testing.T) {
	input := []Occurrence{
		{Number: 1, ScheduledAt: time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)},
		{Number: 2, ScheduledAt: time.Date(2025, 1, 7, 18, 45, 0, 0, time.UTC)},
	}

	got := ApplyExclusions(input, []string{"2025-01-07T23:59:00"})
	if len(got) != 1 || got[0].ScheduledAt.Day() != 6 {
		t.Errorf("exclusion should match by calendar date regardless of time, got %v", got)
	}
}

func TestApplyExclusions_MalformedEntriesSkipped(t *testing.T) {
	input := occurrences(date(2025, 1, 6), date(2025, 1, 7))

	got := ApplyExclusions(input, []string{"31/01/2025", "2025-01-07"})
	if len(got) != 1 || got[0].ScheduledAt.Day() != 6 {
		t.Errorf("malformed entry must be skipped while valid ones apply, got %v", got)
	}
}

func TestApplyExclusions_AllRemoved(t *testing.T) {
	input := occurrences(date(2025, 1, 6))

	got := ApplyExclusions(input, []string{"2025-01-06"})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestGenerateThenExclude(t *testing.T) {
	template := tpl(TypeDaily, date(2025, 1, 6), 5)
	occs, err := Generate(template, Config{})
	if err != nil {
		t.Fatal(err)
	}

	got := ApplyExclusions(occs, []string{"2025-01-08"})
	wantDates(t, got, []time.Time{
		date(2025, 1, 6), date(2025, 1, 7), date(2025, 1, 9), date(2025, 1, 10),
	})
}
