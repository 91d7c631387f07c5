package counter

import "github.com/jaapghar/jaapghar-backend/internal/domain"

// Snapshot is the full per-sevak view the dashboard renders: today's count,
// the lifetime total, the streak, the household total, and today's activity.
// Stale reports that the remote store could not be reached and the values
// come from the local mirror only.
type Snapshot struct {
	UserID        string                 `json:"userId"`
	DisplayName   string                 `json:"displayName"`
	Date          string                 `json:"date"`
	DailyCount    uint64                 `json:"dailyCount"`
	ClickCount    uint64                 `json:"clickCount"`
	ManualCount   uint64                 `json:"manualCount"`
	TotalJaap     uint64                 `json:"totalJaap"`
	CurrentStreak uint64                 `json:"streak"`
	DailyTarget   uint64                 `json:"dailyTarget"`
	SoundEnabled  bool                   `json:"soundEnabled"`
	CombinedTotal uint64                 `json:"combinedTotal"`
	TodayLogs     []domain.DailyLogEntry `json:"todayLogs"`
	Stale         bool                   `json:"isLoading"`
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// snapshotOf assembles a Snapshot from a profile and its entry for the day.
func (s *Service) snapshotOf(p domain.UserProfile, e domain.DailyEntry, logs []domain.DailyLogEntry, combined uint64, stale bool) Snapshot {
	if logs == nil {
		logs = []domain.DailyLogEntry{}
	}
	return Snapshot{
		UserID:        p.ID,
		DisplayName:   p.DisplayName,
		Date:          e.Date,
		DailyCount:    e.TotalCount,
		ClickCount:    e.ClickCount,
		ManualCount:   e.ManualCount,
		TotalJaap:     p.TotalJaap,
		CurrentStreak: p.CurrentStreak,
		DailyTarget:   p.DailyTarget,
		SoundEnabled:  p.SoundEnabled,
		CombinedTotal: combined,
		TodayLogs:     logs,
		Stale:         stale,
	}
}
