package mirror

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// Key layout matches the original deployment so an upgraded process keeps
// reading the cache it wrote before.
func profileKey(userID string) string {
	return fmt.Sprintf("jaap_%s_userData", userID)
}

func dailyKey(userID, date string) string {
	return fmt.Sprintf("jaap_%s_daily_%s", userID, date)
}

func logsKey(userID, date string) string {
	return fmt.Sprintf("jaap_%s_logs_%s", userID, date)
}

func userPrefix(userID string) string {
	return fmt.Sprintf("jaap_%s_", userID)
}

// Profile returns the mirrored profile. A missing or malformed record reads
// as a cache miss, never an error.
func (s *Store) Profile(userID string) (domain.UserProfile, bool) {
	raw, ok := s.Get(profileKey(userID))
	if !ok {
		return domain.UserProfile{}, false
	}
	var p domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.UserProfile{}, false
	}
	return p, true
}

// SetProfile replaces the mirrored profile.
func (s *Store) SetProfile(p domain.UserProfile) error {
	return s.setJSON(profileKey(p.ID), p)
}

// DailyEntry returns the mirrored entry for (userID, date).
func (s *Store) DailyEntry(userID, date string) (domain.DailyEntry, bool) {
	raw, ok := s.Get(dailyKey(userID, date))
	if !ok {
		return domain.DailyEntry{}, false
	}
	var e domain.DailyEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return domain.DailyEntry{}, false
	}
	return e, true
}

// SetDailyEntry replaces the mirrored entry for its (user, day).
func (s *Store) SetDailyEntry(e domain.DailyEntry) error {
	return s.setJSON(dailyKey(e.UserID, e.Date), e)
}

// Logs returns the mirrored activity feed for (userID, date), newest first.
func (s *Store) Logs(userID, date string) []domain.DailyLogEntry {
	raw, ok := s.Get(logsKey(userID, date))
	if !ok {
		return nil
	}
	var logs []domain.DailyLogEntry
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil
	}
	return logs
}

// SetLogs replaces the feed, keeping at most domain.MaxDailyLogEntries.
func (s *Store) SetLogs(userID, date string, logs []domain.DailyLogEntry) error {
	if len(logs) > domain.MaxDailyLogEntries {
		logs = logs[:domain.MaxDailyLogEntries]
	}
	return s.setJSON(logsKey(userID, date), logs)
}

// PrependLog pushes one event onto the front of the feed, re-applying the cap.
func (s *Store) PrependLog(entry domain.DailyLogEntry) error {
	logs := s.Logs(entry.UserID, entry.Date)
	logs = append([]domain.DailyLogEntry{entry}, logs...)
	return s.SetLogs(entry.UserID, entry.Date, logs)
}

// ClearLogs removes the feed for (userID, date).
func (s *Store) ClearLogs(userID, date string) error {
	return s.Delete(logsKey(userID, date))
}

// Summaries scans all mirrored daily entries of the user with date >= start
// (start "" means unbounded), skipping empty days, sorted by date descending.
func (s *Store) Summaries(userID, start string) []domain.DailySummary {
	prefix := fmt.Sprintf("jaap_%s_daily_", userID)
	var out []domain.DailySummary
	for key, raw := range s.Scan(prefix) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		var e domain.DailyEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		if e.TotalCount == 0 {
			continue
		}
		if start != "" && e.Date < start {
			continue
		}
		out = append(out, e.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// DeleteUser removes every mirrored record of the user.
func (s *Store) DeleteUser(userID string) error {
	return s.DeletePrefix(userPrefix(userID))
}

func (s *Store) setJSON(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mirror: encode %s: %w", key, err)
	}
	return s.Set(key, string(blob))
}
