package counter

import "github.com/jaapghar/jaapghar-backend/internal/domain"

// mergeProfiles reconciles the remote and mirrored profile. Counters only
// ever grow outside of explicit resets, so the higher value wins per field.
// Settings follow whichever side wrote last going by lastJaapDate; ties keep
// the remote values since the remote store is the shared source of truth.
func mergeProfiles(remote, local domain.UserProfile) domain.UserProfile {
	out := remote
	out.TotalJaap = maxU64(remote.TotalJaap, local.TotalJaap)
	out.CurrentStreak = maxU64(remote.CurrentStreak, local.CurrentStreak)
	if local.LastJaapDate > remote.LastJaapDate {
		out.LastJaapDate = local.LastJaapDate
		out.CurrentStreak = local.CurrentStreak
	}
	if out.DailyTarget == 0 {
		out.DailyTarget = domain.DefaultDailyTarget
	}
	return out
}

// mergeEntries reconciles the remote and mirrored entry for one day. The
// whole record with the higher total wins rather than a per-field max, so
// clickCount + manualCount == totalCount keeps holding after the merge.
func mergeEntries(remote, local domain.DailyEntry) domain.DailyEntry {
	if local.TotalCount > remote.TotalCount {
		return local
	}
	return remote
}
