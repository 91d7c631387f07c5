package counter

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// IncrementByClick records a single mala-bead click for userID and returns
// the optimistic snapshot. The remote write happens in the background.
func (s *Service) IncrementByClick(ctx context.Context, userID string) (Snapshot, error) {
	return s.increment(ctx, userID, domain.LogTypeClick, 1)
}

// AddManual records a manually entered count. Zero and negative counts are a
// silent no-op returning the current snapshot, matching the entry form's
// behavior of ignoring empty submissions.
func (s *Service) AddManual(ctx context.Context, userID string, count int64) (Snapshot, error) {
	if count <= 0 {
		return s.LoadCached(userID)
	}
	return s.increment(ctx, userID, domain.LogTypeManual, uint64(count))
}

// increment applies delta to the mirror first, answers from that state, and
// hands remote propagation to a supervised background task. The remote store
// uses atomic field additions, so replaying the same delta there later via
// the merge catch-up cannot double count.
func (s *Service) increment(ctx context.Context, userID string, typ domain.LogType, delta uint64) (Snapshot, error) {
	if !s.KnownSevak(userID) {
		return Snapshot{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	now := s.now()
	date := domain.DateOf(now)
	ts := now.UnixMilli()

	profile, ok := s.mirror.Profile(userID)
	if !ok {
		profile = domain.NewUserProfile(userID, s.displayName(userID))
	}
	entry, ok := s.mirror.DailyEntry(userID, date)
	if !ok {
		entry = domain.NewDailyEntry(userID, date, now)
	}
	before := profile

	switch typ {
	case domain.LogTypeClick:
		entry.ClickCount += delta
	case domain.LogTypeManual:
		entry.ManualCount += delta
	}
	entry.TotalCount += delta
	entry.Timestamp = ts

	profile.TotalJaap += delta
	profile.CurrentStreak = NextStreak(profile.CurrentStreak, profile.LastJaapDate, date, domain.DayBefore(now))
	profile.LastJaapDate = date

	logEntry := domain.DailyLogEntry{
		UserID:    userID,
		Date:      date,
		Type:      typ,
		Count:     delta,
		Timestamp: ts,
	}

	if err := s.mirror.SetDailyEntry(entry); err != nil {
		return Snapshot{}, fmt.Errorf("mirror entry write: %w", err)
	}
	if err := s.mirror.SetProfile(profile); err != nil {
		return Snapshot{}, fmt.Errorf("mirror profile write: %w", err)
	}
	if err := s.mirror.PrependLog(logEntry); err != nil {
		s.log.Warn("mirror log write failed", "sevak", userID, "error", err)
	}

	s.tasks.spawn("increment-sync", func(c context.Context) error {
		return s.propagateIncrement(c, before, typ, delta, date, ts, logEntry)
	})

	logs := s.mirror.Logs(userID, date)
	combined := s.combinedFromMirror()
	return s.snapshotOf(profile, entry, logs, combined, false), nil
}

// propagateIncrement pushes one increment to the remote store: the entry and
// profile additions run concurrently, then the streak rule and the activity
// log row. Each call gets its own write budget.
func (s *Service) propagateIncrement(ctx context.Context, before domain.UserProfile, typ domain.LogType, delta uint64, date string, ts int64, logEntry domain.DailyLogEntry) error {
	var click, manual uint64
	if typ == domain.LogTypeClick {
		click = delta
	} else {
		manual = delta
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.entries.AddCounts(c, before.ID, date, click, manual, ts)
		})
	})
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.profiles.AddJaap(c, before.ID, delta, date)
		})
	})
	if err := g.Wait(); err != nil {
		// The mirror already holds the increment; the next load's merge
		// pushes the remainder once the remote store is reachable again.
		return fmt.Errorf("remote increment for %s: %w", before.ID, err)
	}

	streakCtx, cancel := context.WithTimeout(ctx, s.writeBudget)
	s.bumpStreak(streakCtx, before)
	cancel()

	if err := s.budgeted(ctx, func(c context.Context) error {
		return s.journal.Append(c, logEntry)
	}); err != nil {
		s.log.Warn("remote log append failed", "sevak", before.ID, "error", err)
	}

	s.confirmMirror(ctx, before.ID, date)
	return nil
}

// confirmMirror reads the just-written remote documents back and folds them
// into the mirror. Merging instead of overwriting keeps taps that landed in
// the mirror while this task was in flight.
func (s *Service) confirmMirror(ctx context.Context, userID, date string) {
	if err := s.budgeted(ctx, func(c context.Context) error {
		remote, err := s.entries.Get(c, userID, date)
		if err != nil {
			return err
		}
		local, ok := s.mirror.DailyEntry(userID, date)
		if !ok {
			local = *remote
		}
		return s.mirror.SetDailyEntry(mergeEntries(*remote, local))
	}); err != nil {
		s.log.Warn("entry readback skipped", "sevak", userID, "error", err)
	}

	if err := s.budgeted(ctx, func(c context.Context) error {
		remote, err := s.profiles.Get(c, userID)
		if err != nil {
			return err
		}
		local, ok := s.mirror.Profile(userID)
		if !ok {
			local = *remote
		}
		return s.mirror.SetProfile(mergeProfiles(*remote, local))
	}); err != nil {
		s.log.Warn("profile readback skipped", "sevak", userID, "error", err)
	}
}

// budgeted runs fn under the write budget.
func (s *Service) budgeted(ctx context.Context, fn func(context.Context) error) error {
	c, cancel := context.WithTimeout(ctx, s.writeBudget)
	defer cancel()
	return fn(c)
}
