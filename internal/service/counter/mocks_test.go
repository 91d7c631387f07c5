package counter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/domain"
	"github.com/jaapghar/jaapghar-backend/internal/mirror"
)

var errRemoteDown = errors.New("remote down")

// remoteState lets the fakes share one failure switch and delay, the way a
// single unreachable database takes down all three repositories at once.
type remoteState struct {
	mu    sync.Mutex
	fail  bool
	delay time.Duration
}

func (st *remoteState) setFail(v bool) {
	st.mu.Lock()
	st.fail = v
	st.mu.Unlock()
}

func (st *remoteState) setDelay(d time.Duration) {
	st.mu.Lock()
	st.delay = d
	st.mu.Unlock()
}

func (st *remoteState) guard() error {
	st.mu.Lock()
	fail, delay := st.fail, st.delay
	st.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		return errRemoteDown
	}
	return nil
}

type fakeProfiles struct {
	st   *remoteState
	mu   sync.Mutex
	rows map[string]domain.UserProfile
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	if err := f.st.guard(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) Create(_ context.Context, p domain.UserProfile) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[p.ID] = p
	return nil
}

// AddJaap creates the row when missing, matching the UPSERT
// create-or-update semantics in the real store.
func (f *fakeProfiles) AddJaap(_ context.Context, userID string, delta uint64, date string) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.rows[userID]
	p.ID = userID
	p.TotalJaap += delta
	p.LastJaapDate = date
	f.rows[userID] = p
	return nil
}

func (f *fakeProfiles) SubtractTotal(_ context.Context, userID string, amount uint64) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.rows[userID]
	if p.TotalJaap >= amount {
		p.TotalJaap -= amount
	} else {
		p.TotalJaap = 0
	}
	f.rows[userID] = p
	return nil
}

func (f *fakeProfiles) SetStreak(_ context.Context, userID string, streak uint64) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.rows[userID]
	p.CurrentStreak = streak
	f.rows[userID] = p
	return nil
}

func (f *fakeProfiles) Delete(_ context.Context, userID string) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

func (f *fakeProfiles) All(_ context.Context) ([]domain.UserProfile, error) {
	if err := f.st.guard(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.UserProfile, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfiles) get(userID string) (domain.UserProfile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	return p, ok
}

type fakeEntries struct {
	st   *remoteState
	mu   sync.Mutex
	rows map[string]domain.DailyEntry
}

func (f *fakeEntries) Get(_ context.Context, userID, date string) (*domain.DailyEntry, error) {
	if err := f.st.guard(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[domain.EntryID(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEntries) Create(_ context.Context, e domain.DailyEntry) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[e.ID] = e
	return nil
}

func (f *fakeEntries) AddCounts(_ context.Context, userID, date string, click, manual uint64, ts int64) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := domain.EntryID(userID, date)
	e := f.rows[id]
	e.ID, e.UserID, e.Date = id, userID, date
	e.ClickCount += click
	e.ManualCount += manual
	e.TotalCount += click + manual
	e.Timestamp = ts
	f.rows[id] = e
	return nil
}

func (f *fakeEntries) Overwrite(_ context.Context, e domain.DailyEntry) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[e.ID] = e
	return nil
}

func (f *fakeEntries) ListSince(_ context.Context, userID, start string) ([]domain.DailySummary, error) {
	if err := f.st.guard(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DailySummary
	for _, e := range f.rows {
		if e.UserID != userID || e.TotalCount == 0 {
			continue
		}
		if start != "" && e.Date < start {
			continue
		}
		out = append(out, e.Summary())
	}
	return out, nil
}

func (f *fakeEntries) DeleteAll(_ context.Context, userID string) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.rows {
		if e.UserID == userID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeEntries) get(userID, date string) (domain.DailyEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[domain.EntryID(userID, date)]
	return e, ok
}

type fakeJournal struct {
	st   *remoteState
	mu   sync.Mutex
	rows []domain.DailyLogEntry
}

func (f *fakeJournal) Append(_ context.Context, e domain.DailyLogEntry) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, e)
	return nil
}

func (f *fakeJournal) ListForDay(_ context.Context, userID, date string) ([]domain.DailyLogEntry, error) {
	if err := f.st.guard(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DailyLogEntry
	for _, e := range f.rows {
		if e.UserID == userID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeJournal) DeleteForDay(_ context.Context, userID, date string) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, e := range f.rows {
		if e.UserID != userID || e.Date != date {
			kept = append(kept, e)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeJournal) DeleteAll(_ context.Context, userID string) error {
	if err := f.st.guard(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, e := range f.rows {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	f.rows = kept
	return nil
}

type testRig struct {
	svc      *Service
	remote   *remoteState
	profiles *fakeProfiles
	entries  *fakeEntries
	journal  *fakeJournal
	mirror   *mirror.Store
}

var testClock = time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	st := &remoteState{}
	profiles := &fakeProfiles{st: st, rows: map[string]domain.UserProfile{}}
	entries := &fakeEntries{st: st, rows: map[string]domain.DailyEntry{}}
	journal := &fakeJournal{st: st}

	m, err := mirror.Open(config.MirrorConfig{
		Path:        filepath.Join(t.TempDir(), "mirror.db"),
		OpenTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	cfg := config.CounterConfig{
		ReadBudget:  250 * time.Millisecond,
		WriteBudget: 250 * time.Millisecond,
		ResetToken:  "RESET",
		Sevaks: []config.Sevak{
			{ID: "sevak1", DisplayName: "Sevak 1"},
			{ID: "sevak2", DisplayName: "Sevak 2"},
		},
	}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, profiles, entries, journal, m)
	svc.now = func() time.Time { return testClock }

	return &testRig{svc: svc, remote: st, profiles: profiles, entries: entries, journal: journal, mirror: m}
}
