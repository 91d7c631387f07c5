package counter

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// LoadCached returns a snapshot built from the local mirror alone. It never
// touches the network, so the dashboard can render before reconciliation
// finishes. The snapshot is marked stale.
func (s *Service) LoadCached(userID string) (Snapshot, error) {
	if !s.KnownSevak(userID) {
		return Snapshot{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	date := domain.DateOf(s.now())

	p, ok := s.mirror.Profile(userID)
	if !ok {
		p = domain.NewUserProfile(userID, s.displayName(userID))
	}
	e, ok := s.mirror.DailyEntry(userID, date)
	if !ok {
		e = domain.NewDailyEntry(userID, date, s.now())
	}
	logs := s.mirror.Logs(userID, date)
	return s.snapshotOf(p, e, logs, s.combinedFromMirror(), true), nil
}

// Load reconciles both stores for userID and returns the merged snapshot.
// Profile, daily entry, today's logs and the combined total are fetched
// concurrently; any fetch that fails or times out degrades to mirrored data
// without failing the whole load.
func (s *Service) Load(ctx context.Context, userID string) (Snapshot, error) {
	if !s.KnownSevak(userID) {
		return Snapshot{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	date := domain.DateOf(s.now())

	var (
		profile      domain.UserProfile
		entry        domain.DailyEntry
		logs         []domain.DailyLogEntry
		combined     uint64
		profileStale bool
		entryStale   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, profileStale = s.loadProfile(gctx, userID)
		return nil
	})
	g.Go(func() error {
		entry, entryStale = s.loadEntry(gctx, userID, date)
		return nil
	})
	g.Go(func() error {
		logs = s.loadLogs(gctx, userID, date)
		return nil
	})
	g.Go(func() error {
		combined = s.combinedTotal(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	stale := profileStale || entryStale

	// The merged profile may carry a higher total than combinedTotal saw if
	// that fetch degraded; clamp so the household total never reads below a
	// single member's total.
	if combined < profile.TotalJaap {
		combined = profile.TotalJaap
	}

	return s.snapshotOf(profile, entry, logs, combined, stale), nil
}

// loadProfile fetches the remote profile inside the read budget, creates it
// when missing, merges it with the mirror, and writes the winner back to the
// mirror. Returns stale=true when only mirrored data was available.
func (s *Service) loadProfile(ctx context.Context, userID string) (domain.UserProfile, bool) {
	local, hasLocal := s.mirror.Profile(userID)
	if !hasLocal {
		local = domain.NewUserProfile(userID, s.displayName(userID))
	}

	remote, err := withTimeout(ctx, s.readBudget, nil, func(c context.Context) (*domain.UserProfile, error) {
		return s.profiles.Get(c, userID)
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// First run for this sevak. Seed the remote store from whatever the
		// mirror holds so an offline history is not lost.
		seed := local
		if _, cerr := withTimeout(ctx, s.writeBudget, struct{}{}, func(c context.Context) (struct{}, error) {
			return struct{}{}, s.profiles.Create(c, seed)
		}); cerr != nil {
			s.log.Warn("profile seed failed", "sevak", userID, "error", cerr)
		}
		if werr := s.mirror.SetProfile(seed); werr != nil {
			s.log.Warn("mirror profile write failed", "sevak", userID, "error", werr)
		}
		return seed, false
	case err != nil:
		s.log.Warn("profile load degraded to mirror", "sevak", userID, "error", err)
		return local, true
	}

	merged := mergeProfiles(*remote, local)
	if merged.TotalJaap > remote.TotalJaap {
		// The mirror is ahead; push the difference so both stores converge.
		delta := merged.TotalJaap - remote.TotalJaap
		s.tasks.spawn("profile-catchup", func(c context.Context) error {
			return s.profiles.AddJaap(c, userID, delta, merged.LastJaapDate)
		})
	}
	if werr := s.mirror.SetProfile(merged); werr != nil {
		s.log.Warn("mirror profile write failed", "sevak", userID, "error", werr)
	}
	return merged, false
}

// loadEntry mirrors loadProfile for the day's entry.
func (s *Service) loadEntry(ctx context.Context, userID, date string) (domain.DailyEntry, bool) {
	local, hasLocal := s.mirror.DailyEntry(userID, date)
	if !hasLocal {
		local = domain.NewDailyEntry(userID, date, s.now())
	}

	remote, err := withTimeout(ctx, s.readBudget, nil, func(c context.Context) (*domain.DailyEntry, error) {
		return s.entries.Get(c, userID, date)
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		seed := local
		if _, cerr := withTimeout(ctx, s.writeBudget, struct{}{}, func(c context.Context) (struct{}, error) {
			return struct{}{}, s.entries.Create(c, seed)
		}); cerr != nil {
			s.log.Warn("entry seed failed", "sevak", userID, "date", date, "error", cerr)
		}
		if werr := s.mirror.SetDailyEntry(seed); werr != nil {
			s.log.Warn("mirror entry write failed", "sevak", userID, "error", werr)
		}
		return seed, false
	case err != nil:
		s.log.Warn("entry load degraded to mirror", "sevak", userID, "date", date, "error", err)
		return local, true
	}

	merged := mergeEntries(*remote, local)
	if merged.TotalCount > remote.TotalCount {
		s.tasks.spawn("entry-catchup", func(c context.Context) error {
			return s.entries.Overwrite(c, merged)
		})
	}
	if werr := s.mirror.SetDailyEntry(merged); werr != nil {
		s.log.Warn("mirror entry write failed", "sevak", userID, "error", werr)
	}
	return merged, false
}

// loadLogs fetches today's activity log. A non-empty remote list replaces
// the mirror wholesale; an empty or failed fetch keeps the mirrored rows.
func (s *Service) loadLogs(ctx context.Context, userID, date string) []domain.DailyLogEntry {
	local := s.mirror.Logs(userID, date)

	remote, err := withTimeout(ctx, s.readBudget, nil, func(c context.Context) ([]domain.DailyLogEntry, error) {
		return s.journal.ListForDay(c, userID, date)
	})
	if err != nil {
		s.log.Warn("log load degraded to mirror", "sevak", userID, "date", date, "error", err)
		return local
	}
	if len(remote) == 0 {
		return local
	}
	if werr := s.mirror.SetLogs(userID, date, remote); werr != nil {
		s.log.Warn("mirror log write failed", "sevak", userID, "error", werr)
	}
	return remote
}
