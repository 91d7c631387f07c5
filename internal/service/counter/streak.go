package counter

import (
	"context"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// NextStreak computes the streak after a jaap is recorded today. A second
// jaap on the same day leaves the streak alone, continuing from yesterday
// extends it, and any gap starts over at one.
func NextStreak(current uint64, lastJaapDate, today, yesterday string) uint64 {
	switch lastJaapDate {
	case today:
		return current
	case yesterday:
		return current + 1
	default:
		return 1
	}
}

// bumpStreak applies the streak rule after an increment, on the profile
// value fetched before the increment landed. Returns the updated profile.
func (s *Service) bumpStreak(ctx context.Context, p domain.UserProfile) domain.UserProfile {
	now := s.now()
	today := domain.DateOf(now)
	yesterday := domain.DayBefore(now)

	next := NextStreak(p.CurrentStreak, p.LastJaapDate, today, yesterday)
	if next != p.CurrentStreak {
		if err := s.profiles.SetStreak(ctx, p.ID, next); err != nil {
			s.log.Warn("streak update failed", "sevak", p.ID, "error", err)
		}
	}
	p.CurrentStreak = next
	p.LastJaapDate = today
	return p
}
