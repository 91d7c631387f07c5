package counter

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// ResetDailyCount zeroes today's entry for userID, removes today's portion
// from the lifetime total, and clears today's activity log. Unlike the
// increment path this writes the remote store synchronously: a reset that
// only landed in the mirror would be undone by the next merge, since the
// merge always prefers the higher count.
func (s *Service) ResetDailyCount(ctx context.Context, userID string) (Snapshot, error) {
	if !s.KnownSevak(userID) {
		return Snapshot{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	now := s.now()
	date := domain.DateOf(now)

	entry, ok := s.mirror.DailyEntry(userID, date)
	if !ok {
		entry = domain.NewDailyEntry(userID, date, now)
	}
	removed := entry.TotalCount
	// The remote copy can be ahead of the mirror when another device has been
	// counting, and the overwrite below zeroes it wholesale. Subtract whichever
	// store recorded more, or the lifetime total would keep the remote-only
	// jaaps forever.
	remote, err := withTimeout(ctx, s.readBudget, nil, func(c context.Context) (*domain.DailyEntry, error) {
		return s.entries.Get(c, userID, date)
	})
	if err == nil && remote.TotalCount > removed {
		removed = remote.TotalCount
	}

	zeroed := domain.NewDailyEntry(userID, date, now)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.entries.Overwrite(c, zeroed)
		})
	})
	if removed > 0 {
		g.Go(func() error {
			return s.budgeted(gctx, func(c context.Context) error {
				return s.profiles.SubtractTotal(c, userID, removed)
			})
		})
	}
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.journal.DeleteForDay(c, userID, date)
		})
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("daily reset for %s: %w", userID, err)
	}

	if err := s.mirror.SetDailyEntry(zeroed); err != nil {
		return Snapshot{}, fmt.Errorf("mirror entry write: %w", err)
	}
	profile, ok := s.mirror.Profile(userID)
	if ok {
		if profile.TotalJaap >= removed {
			profile.TotalJaap -= removed
		} else {
			profile.TotalJaap = 0
		}
		if err := s.mirror.SetProfile(profile); err != nil {
			return Snapshot{}, fmt.Errorf("mirror profile write: %w", err)
		}
	} else {
		profile = domain.NewUserProfile(userID, s.displayName(userID))
	}
	if err := s.mirror.ClearLogs(userID, date); err != nil {
		s.log.Warn("mirror log clear failed", "sevak", userID, "error", err)
	}

	s.log.Info("daily count reset", "sevak", userID, "date", date, "removed", removed)
	return s.snapshotOf(profile, zeroed, nil, s.combinedFromMirror(), false), nil
}

// ResetAllData wipes every record for userID in both stores and recreates a
// fresh profile. The caller must supply the confirmation token verbatim.
func (s *Service) ResetAllData(ctx context.Context, userID, confirm string) (Snapshot, error) {
	if !s.KnownSevak(userID) {
		return Snapshot{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	if confirm != s.resetToken {
		return Snapshot{}, domain.NewValidationError("confirm", fmt.Sprintf("type %s to confirm", s.resetToken))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.entries.DeleteAll(c, userID)
		})
	})
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.journal.DeleteAll(c, userID)
		})
	})
	g.Go(func() error {
		return s.budgeted(gctx, func(c context.Context) error {
			return s.profiles.Delete(c, userID)
		})
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("full reset for %s: %w", userID, err)
	}

	fresh := domain.NewUserProfile(userID, s.displayName(userID))
	if err := s.budgeted(ctx, func(c context.Context) error {
		return s.profiles.Create(c, fresh)
	}); err != nil {
		s.log.Warn("fresh profile seed failed", "sevak", userID, "error", err)
	}

	if err := s.mirror.DeleteUser(userID); err != nil {
		return Snapshot{}, fmt.Errorf("mirror wipe: %w", err)
	}
	if err := s.mirror.SetProfile(fresh); err != nil {
		return Snapshot{}, fmt.Errorf("mirror profile write: %w", err)
	}

	s.log.Info("all data reset", "sevak", userID)
	entry := domain.NewDailyEntry(userID, domain.DateOf(s.now()), s.now())
	return s.snapshotOf(fresh, entry, nil, s.combinedFromMirror(), false), nil
}
