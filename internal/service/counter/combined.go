package counter

import "context"

// combinedTotal sums every sevak's lifetime total from the remote store,
// taking the mirror's value for any sevak whose remote copy lags behind.
// Falls back to the mirror alone when the remote fetch fails.
func (s *Service) combinedTotal(ctx context.Context) uint64 {
	remote, err := withTimeout(ctx, s.readBudget, nil, func(c context.Context) (map[string]uint64, error) {
		profiles, perr := s.profiles.All(c)
		if perr != nil {
			return nil, perr
		}
		totals := make(map[string]uint64, len(profiles))
		for _, p := range profiles {
			totals[p.ID] = p.TotalJaap
		}
		return totals, nil
	})
	if err != nil {
		s.log.Warn("combined total degraded to mirror", "error", err)
		return s.combinedFromMirror()
	}

	var sum uint64
	for _, sv := range s.roster {
		total := remote[sv.ID]
		if local, ok := s.mirror.Profile(sv.ID); ok {
			total = maxU64(total, local.TotalJaap)
		}
		sum += total
	}
	return sum
}

// CombinedTotal is the household total across all sevaks.
func (s *Service) CombinedTotal(ctx context.Context) uint64 {
	return s.combinedTotal(ctx)
}

func (s *Service) combinedFromMirror() uint64 {
	var sum uint64
	for _, sv := range s.roster {
		if p, ok := s.mirror.Profile(sv.ID); ok {
			sum += p.TotalJaap
		}
	}
	return sum
}
