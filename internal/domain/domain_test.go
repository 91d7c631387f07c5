package domain

import (
	"testing"
	"time"
)

func TestEntryID(t *testing.T) {
	t.Parallel()

	if got := EntryID("sevak1", "2025-03-09"); got != "sevak1_2025-03-09" {
		t.Errorf("EntryID: got %q", got)
	}
}

func TestNewDailyEntry_ZeroCountsConsistent(t *testing.T) {
	t.Parallel()

	e := NewDailyEntry("sevak2", "2025-03-09", time.Unix(1741500000, 0))
	if !e.Consistent() {
		t.Error("fresh entry must satisfy the counter invariant")
	}
	if e.Timestamp != 1741500000000 {
		t.Errorf("timestamp: got %d, want epoch milliseconds", e.Timestamp)
	}
}

func TestConsistent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry DailyEntry
		want  bool
	}{
		{"balanced", DailyEntry{ClickCount: 3, ManualCount: 5, TotalCount: 8}, true},
		{"drifted", DailyEntry{ClickCount: 3, ManualCount: 5, TotalCount: 7}, false},
		{"zero", DailyEntry{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Consistent(); got != tt.want {
				t.Errorf("Consistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistoryFilter_StartDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		filter HistoryFilter
		want   string
	}{
		{FilterToday, "2025-03-15"},
		{FilterWeek, "2025-03-08"},
		{FilterMonth, "2025-02-15"},
		{FilterAll, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			if got := tt.filter.StartDate(now); got != tt.want {
				t.Errorf("StartDate(%s) = %q, want %q", tt.filter, got, tt.want)
			}
		})
	}
}

func TestParseHistoryFilter_UnknownDefaultsToAll(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "yesterday", "ALL"} {
		if got := ParseHistoryFilter(s); got != FilterAll {
			t.Errorf("ParseHistoryFilter(%q) = %q, want %q", s, got, FilterAll)
		}
	}
	if got := ParseHistoryFilter("week"); got != FilterWeek {
		t.Errorf("ParseHistoryFilter(week) = %q", got)
	}
}

func TestDateOf_UsesUTC(t *testing.T) {
	t.Parallel()

	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("minus5", -5*3600)
	ts := time.Date(2025, 3, 15, 23, 30, 0, 0, loc)
	if got := DateOf(ts); got != "2025-03-16" {
		t.Errorf("DateOf = %q, want 2025-03-16", got)
	}
}
