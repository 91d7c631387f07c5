package counter

import (
	"context"
	"fmt"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// GetHistory lists past daily summaries for userID, newest first, bounded by
// the filter's window. Served from the remote store, from the mirror when
// the remote is unreachable.
func (s *Service) GetHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]domain.DailySummary, error) {
	if !s.KnownSevak(userID) {
		return nil, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	start := filter.StartDate(s.now())

	summaries, err := withTimeout(ctx, s.readBudget, nil, func(c context.Context) ([]domain.DailySummary, error) {
		return s.entries.ListSince(c, userID, start)
	})
	if err != nil {
		s.log.Warn("history degraded to mirror", "sevak", userID, "filter", string(filter), "error", err)
		summaries = s.mirror.Summaries(userID, start)
	}
	if summaries == nil {
		summaries = []domain.DailySummary{}
	}
	return summaries, nil
}
