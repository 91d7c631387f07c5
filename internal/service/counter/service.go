// Package counter implements the jaap synchronization engine: optimistic
// increments, timeout-guarded remote access, mirror fallback writes, and the
// take-the-higher-value reconciliation between the two stores.
package counter

import (
	"context"
	"log/slog"
	"time"

	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

// profileRepo defines the remote profile operations needed by the engine.
type profileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Create(ctx context.Context, p domain.UserProfile) error
	AddJaap(ctx context.Context, userID string, delta uint64, date string) error
	SubtractTotal(ctx context.Context, userID string, amount uint64) error
	SetStreak(ctx context.Context, userID string, streak uint64) error
	Delete(ctx context.Context, userID string) error
	All(ctx context.Context) ([]domain.UserProfile, error)
}

// entryRepo defines the remote daily entry operations needed by the engine.
type entryRepo interface {
	Get(ctx context.Context, userID, date string) (*domain.DailyEntry, error)
	Create(ctx context.Context, e domain.DailyEntry) error
	AddCounts(ctx context.Context, userID, date string, click, manual uint64, ts int64) error
	Overwrite(ctx context.Context, e domain.DailyEntry) error
	ListSince(ctx context.Context, userID, start string) ([]domain.DailySummary, error)
	DeleteAll(ctx context.Context, userID string) error
}

// journalRepo defines the remote activity log operations needed by the engine.
type journalRepo interface {
	Append(ctx context.Context, e domain.DailyLogEntry) error
	ListForDay(ctx context.Context, userID, date string) ([]domain.DailyLogEntry, error)
	DeleteForDay(ctx context.Context, userID, date string) error
	DeleteAll(ctx context.Context, userID string) error
}

// localMirror defines the on-device cache operations needed by the engine.
// *mirror.Store satisfies it.
type localMirror interface {
	Profile(userID string) (domain.UserProfile, bool)
	SetProfile(p domain.UserProfile) error
	DailyEntry(userID, date string) (domain.DailyEntry, bool)
	SetDailyEntry(e domain.DailyEntry) error
	Logs(userID, date string) []domain.DailyLogEntry
	SetLogs(userID, date string, logs []domain.DailyLogEntry) error
	PrependLog(e domain.DailyLogEntry) error
	ClearLogs(userID, date string) error
	Summaries(userID, start string) []domain.DailySummary
	DeleteUser(userID string) error
}

// Service is the counter synchronization engine. All public operations
// degrade to mirrored data instead of returning remote errors.
type Service struct {
	log      *slog.Logger
	profiles profileRepo
	entries  entryRepo
	journal  journalRepo
	mirror   localMirror

	readBudget  time.Duration
	writeBudget time.Duration
	resetToken  string
	roster      []config.Sevak

	now   func() time.Time
	tasks *taskGroup
}

// NewService creates the engine. The store clients are injected here once at
// process start; nothing in the engine reaches for shared global handles.
func NewService(
	logger *slog.Logger,
	cfg config.CounterConfig,
	profiles profileRepo,
	entries entryRepo,
	journal journalRepo,
	mirror localMirror,
) *Service {
	log := logger.With("service", "counter")
	return &Service{
		log:         log,
		profiles:    profiles,
		entries:     entries,
		journal:     journal,
		mirror:      mirror,
		readBudget:  cfg.ReadBudget,
		writeBudget: cfg.WriteBudget,
		resetToken:  cfg.ResetToken,
		roster:      cfg.Sevaks,
		now:         time.Now,
		tasks:       newTaskGroup(log),
	}
}

// Roster returns the fixed sevak identities.
func (s *Service) Roster() []config.Sevak {
	out := make([]config.Sevak, len(s.roster))
	copy(out, s.roster)
	return out
}

// KnownSevak reports whether userID is one of the fixed identities.
func (s *Service) KnownSevak(userID string) bool {
	for _, sv := range s.roster {
		if sv.ID == userID {
			return true
		}
	}
	return false
}

func (s *Service) displayName(userID string) string {
	for _, sv := range s.roster {
		if sv.ID == userID {
			return sv.DisplayName
		}
	}
	return userID
}

// Wait blocks until all supervised background tasks have finished. Shutdown
// and tests use it; request paths never do.
func (s *Service) Wait() {
	s.tasks.Wait()
}
