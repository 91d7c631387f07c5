package domain

// LogType distinguishes tap increments from manual additions.
type LogType string

const (
	LogTypeClick  LogType = "click"
	LogTypeManual LogType = "manual"
)

// Valid reports whether t is one of the known log types. Unknown values in
// remote documents are tolerated but skipped at the adapter boundary.
func (t LogType) Valid() bool {
	return t == LogTypeClick || t == LogTypeManual
}

// MaxDailyLogEntries caps the locally mirrored activity feed per (user, day).
const MaxDailyLogEntries = 50

// DailyLogEntry is one append-only activity event. It feeds the "today"
// activity list and is never read back for totals.
type DailyLogEntry struct {
	UserID    string  `json:"userId"`
	Date      string  `json:"date"`
	Type      LogType `json:"type"`
	Count     uint64  `json:"count"`
	Timestamp int64   `json:"timestamp"`
}
