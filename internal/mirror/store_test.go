package mirror

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.MirrorConfig{
		Path:        filepath.Join(t.TempDir(), "mirror.db"),
		OpenTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSetDelete(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.Get("missing")
	require.False(t, ok)

	require.NoError(t, s.Set("k", `{"a":1}`))
	got, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, got)

	require.NoError(t, s.Delete("k"))
	_, ok = s.Get("k")
	require.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, s.Delete("k"))
}

func TestStore_MalformedRecordReadsAsMiss(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("jaap_sevak1_userData", "{not json"))
	_, ok := s.Profile("sevak1")
	require.False(t, ok, "malformed cache must read as a miss")

	require.NoError(t, s.Set("jaap_sevak1_daily_2025-03-09", "[]"))
	_, ok = s.DailyEntry("sevak1", "2025-03-09")
	require.False(t, ok, "wrong-shape cache must read as a miss")
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := domain.NewUserProfile("sevak1", "Sevak 1")
	p.TotalJaap = 1080
	p.CurrentStreak = 4
	p.LastJaapDate = "2025-03-09"

	require.NoError(t, s.SetProfile(p))
	got, ok := s.Profile("sevak1")
	require.True(t, ok)
	require.Equal(t, p, got)
}

func TestStore_LogCap(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < domain.MaxDailyLogEntries+10; i++ {
		err := s.PrependLog(domain.DailyLogEntry{
			UserID:    "sevak1",
			Date:      "2025-03-09",
			Type:      domain.LogTypeClick,
			Count:     1,
			Timestamp: int64(i),
		})
		require.NoError(t, err)
	}

	logs := s.Logs("sevak1", "2025-03-09")
	require.Len(t, logs, domain.MaxDailyLogEntries)
	// Newest first: the last prepended entry leads.
	require.Equal(t, int64(domain.MaxDailyLogEntries+9), logs[0].Timestamp)
}

func TestStore_Summaries(t *testing.T) {
	s := newTestStore(t)

	days := []struct {
		date  string
		total uint64
	}{
		{"2025-03-01", 10},
		{"2025-03-05", 0}, // empty day is skipped
		{"2025-03-09", 108},
		{"2025-02-20", 50},
	}
	for _, d := range days {
		require.NoError(t, s.SetDailyEntry(domain.DailyEntry{
			ID:         domain.EntryID("sevak1", d.date),
			UserID:     "sevak1",
			Date:       d.date,
			ClickCount: d.total,
			TotalCount: d.total,
		}))
	}
	// Another user's entries never leak in.
	require.NoError(t, s.SetDailyEntry(domain.DailyEntry{
		ID: domain.EntryID("sevak2", "2025-03-09"), UserID: "sevak2",
		Date: "2025-03-09", ClickCount: 7, TotalCount: 7,
	}))

	all := s.Summaries("sevak1", "")
	require.Len(t, all, 3)
	require.Equal(t, "2025-03-09", all[0].Date)
	require.Equal(t, "2025-02-20", all[2].Date)

	bounded := s.Summaries("sevak1", "2025-03-01")
	require.Len(t, bounded, 2)
	for _, sum := range bounded {
		require.GreaterOrEqual(t, sum.Date, "2025-03-01")
	}
}

func TestStore_DeleteUser(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetProfile(domain.NewUserProfile("sevak1", "Sevak 1")))
	require.NoError(t, s.SetDailyEntry(domain.DailyEntry{
		ID: "sevak1_2025-03-09", UserID: "sevak1", Date: "2025-03-09", TotalCount: 1, ClickCount: 1,
	}))
	require.NoError(t, s.SetProfile(domain.NewUserProfile("sevak2", "Sevak 2")))

	require.NoError(t, s.DeleteUser("sevak1"))

	_, ok := s.Profile("sevak1")
	require.False(t, ok)
	_, ok = s.Profile("sevak2")
	require.True(t, ok, "other users' records must survive")
}
