// Package settings manages per-sevak preferences: the daily target, the
// click sound and the display name.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

type profileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateSettings(ctx context.Context, userID string, s domain.Settings) error
}

type localMirror interface {
	Profile(userID string) (domain.UserProfile, bool)
	SetProfile(p domain.UserProfile) error
}

// Service reads and updates preferences. Reads degrade to the mirror;
// updates must reach the remote store to succeed.
type Service struct {
	log         *slog.Logger
	profiles    profileRepo
	mirror      localMirror
	roster      []config.Sevak
	readBudget  time.Duration
	writeBudget time.Duration
}

func NewService(logger *slog.Logger, cfg config.CounterConfig, profiles profileRepo, mirror localMirror) *Service {
	return &Service{
		log:         logger.With("service", "settings"),
		profiles:    profiles,
		mirror:      mirror,
		roster:      cfg.Sevaks,
		readBudget:  cfg.ReadBudget,
		writeBudget: cfg.WriteBudget,
	}
}

func (s *Service) known(userID string) bool {
	for _, sv := range s.roster {
		if sv.ID == userID {
			return true
		}
	}
	return false
}

// Get returns the sevak's current preferences, falling back to the mirror
// and then to defaults when the remote store is unreachable.
func (s *Service) Get(ctx context.Context, userID string) (domain.Settings, error) {
	if !s.known(userID) {
		return domain.Settings{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}

	rctx, cancel := context.WithTimeout(ctx, s.readBudget)
	defer cancel()
	p, err := s.profiles.Get(rctx, userID)
	if err == nil {
		return domain.SettingsOf(*p), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("settings read degraded to mirror", "sevak", userID, "error", err)
	}
	if local, ok := s.mirror.Profile(userID); ok {
		return domain.SettingsOf(local), nil
	}
	return domain.SettingsOf(domain.UserProfile{DailyTarget: domain.DefaultDailyTarget, SoundEnabled: true}), nil
}

// Update applies the changed preference fields and returns the full new set.
// The remote write is synchronous so two devices cannot hold diverging
// settings with no counter activity to trigger a merge.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (domain.Settings, error) {
	if !s.known(userID) {
		return domain.Settings{}, fmt.Errorf("sevak %q: %w", userID, domain.ErrNotFound)
	}
	if err := in.Validate(); err != nil {
		return domain.Settings{}, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	next := in.apply(current)

	wctx, cancel := context.WithTimeout(ctx, s.writeBudget)
	defer cancel()
	if err := s.profiles.UpdateSettings(wctx, userID, next); err != nil {
		return domain.Settings{}, fmt.Errorf("settings update for %s: %w", userID, err)
	}

	if local, ok := s.mirror.Profile(userID); ok {
		local.DailyTarget = next.DailyTarget
		local.SoundEnabled = next.SoundEnabled
		local.DisplayName = next.DisplayName
		if werr := s.mirror.SetProfile(local); werr != nil {
			s.log.Warn("mirror settings write failed", "sevak", userID, "error", werr)
		}
	}

	s.log.Info("settings updated", "sevak", userID, "target", next.DailyTarget)
	return next, nil
}

// TargetPresets returns the daily target shortcuts the client offers.
func (s *Service) TargetPresets() []uint64 {
	out := make([]uint64, len(domain.TargetPresets))
	copy(out, domain.TargetPresets)
	return out
}
