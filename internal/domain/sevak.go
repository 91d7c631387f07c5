package domain

// DefaultDailyTarget is the jaap goal assigned to newly created profiles.
const DefaultDailyTarget uint64 = 108

// UserProfile represents one sevak's accumulated state.
// LastJaapDate is a "YYYY-MM-DD" string, empty until the first jaap.
type UserProfile struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	TotalJaap     uint64 `json:"totalJaap"`
	CurrentStreak uint64 `json:"currentStreak"`
	DailyTarget   uint64 `json:"dailyTarget"`
	SoundEnabled  bool   `json:"soundEnabled"`
	LastJaapDate  string `json:"lastJaapDate"`
}

// NewUserProfile returns the default profile created lazily on first access.
func NewUserProfile(id, displayName string) UserProfile {
	return UserProfile{
		ID:           id,
		DisplayName:  displayName,
		DailyTarget:  DefaultDailyTarget,
		SoundEnabled: true,
	}
}

// Settings is the externally supplied, per-sevak preference set.
type Settings struct {
	DailyTarget  uint64 `json:"dailyTarget"`
	SoundEnabled bool   `json:"soundEnabled"`
	DisplayName  string `json:"displayName"`
}

// TargetPresets are the daily target shortcuts offered by the settings page.
var TargetPresets = []uint64{108, 500, 1008, 5000}

// SettingsOf projects the preference fields out of a profile.
func SettingsOf(p UserProfile) Settings {
	return Settings{
		DailyTarget:  p.DailyTarget,
		SoundEnabled: p.SoundEnabled,
		DisplayName:  p.DisplayName,
	}
}
