package domain

import (
	"fmt"
	"time"
)

// DailyEntry is the per-(user, day) counter record.
// Invariant after every completed write: TotalCount == ClickCount + ManualCount.
type DailyEntry struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	ClickCount  uint64 `json:"clickCount"`
	ManualCount uint64 `json:"manualCount"`
	TotalCount  uint64 `json:"totalCount"`
	Timestamp   int64  `json:"timestamp"`
}

// EntryID builds the document key for a (user, day) pair.
func EntryID(userID, date string) string {
	return fmt.Sprintf("%s_%s", userID, date)
}

// NewDailyEntry returns the zero entry created lazily at the first activity
// of the day.
func NewDailyEntry(userID, date string, now time.Time) DailyEntry {
	return DailyEntry{
		ID:        EntryID(userID, date),
		UserID:    userID,
		Date:      date,
		Timestamp: now.UnixMilli(),
	}
}

// Consistent reports whether the counter invariant holds.
func (e DailyEntry) Consistent() bool {
	return e.TotalCount == e.ClickCount+e.ManualCount
}

// Summary projects the entry into its read-only history form.
func (e DailyEntry) Summary() DailySummary {
	return DailySummary{
		Date:        e.Date,
		ClickCount:  e.ClickCount,
		ManualCount: e.ManualCount,
		TotalCount:  e.TotalCount,
	}
}

// DailySummary is the derived projection used by history views.
// It is computed on read and never persisted on its own.
type DailySummary struct {
	Date        string `json:"date"`
	ClickCount  uint64 `json:"clickCount"`
	ManualCount uint64 `json:"manualCount"`
	TotalCount  uint64 `json:"totalCount"`
}
