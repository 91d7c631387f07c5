// Package profile implements the sevak profile repository on SurrealDB.
package profile

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

const table = "users"

// Repo provides profile persistence backed by SurrealDB.
type Repo struct {
	db *surrealdb.DB
}

// New creates a new profile repository.
func New(db *surrealdb.DB) *Repo {
	return &Repo{db: db}
}

// record is the wire shape of a profile document. Fields are optional on the
// remote side; defaulting happens in toDomain.
type record struct {
	ID            *models.RecordID `json:"id,omitempty"`
	DisplayName   string           `json:"displayName"`
	TotalJaap     uint64           `json:"totalJaap"`
	CurrentStreak uint64           `json:"currentStreak"`
	DailyTarget   uint64           `json:"dailyTarget"`
	SoundEnabled  bool             `json:"soundEnabled"`
	LastJaapDate  string           `json:"lastJaapDate"`
}

func fromDomain(p domain.UserProfile) record {
	id := models.NewRecordID(table, p.ID)
	return record{
		ID:            &id,
		DisplayName:   p.DisplayName,
		TotalJaap:     p.TotalJaap,
		CurrentStreak: p.CurrentStreak,
		DailyTarget:   p.DailyTarget,
		SoundEnabled:  p.SoundEnabled,
		LastJaapDate:  p.LastJaapDate,
	}
}

func toDomain(userID string, r record) domain.UserProfile {
	p := domain.UserProfile{
		ID:            userID,
		DisplayName:   r.DisplayName,
		TotalJaap:     r.TotalJaap,
		CurrentStreak: r.CurrentStreak,
		DailyTarget:   r.DailyTarget,
		SoundEnabled:  r.SoundEnabled,
		LastJaapDate:  r.LastJaapDate,
	}
	if p.DailyTarget == 0 {
		p.DailyTarget = domain.DefaultDailyTarget
	}
	return p
}

// Get returns the profile document, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	rec, err := surrealdb.Select[record](ctx, r.db, models.NewRecordID(table, userID))
	if err != nil {
		return nil, fmt.Errorf("profile get %s: %w", userID, err)
	}
	if rec == nil || rec.ID == nil {
		return nil, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	p := toDomain(userID, *rec)
	return &p, nil
}

// Create writes the profile document, overwriting any previous version.
func (r *Repo) Create(ctx context.Context, p domain.UserProfile) error {
	if _, err := surrealdb.Upsert[struct{}](ctx, r.db, models.NewRecordID(table, p.ID), fromDomain(p)); err != nil {
		return fmt.Errorf("profile create %s: %w", p.ID, err)
	}
	return nil
}

// AddJaap atomically increments totalJaap and stamps lastJaapDate. The
// increment commutes, so two devices adding concurrently both land. UPSERT
// rather than UPDATE: since SurrealDB 2.0 an UPDATE against a missing
// record id matches nothing and reports success, which would drop the very
// first jaap of a profile that has not been seeded yet.
func (r *Repo) AddJaap(ctx context.Context, userID string, delta uint64, date string) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPSERT type::thing($tb, $uid) SET totalJaap += $delta, lastJaapDate = $date`,
		map[string]any{"tb": table, "uid": userID, "delta": delta, "date": date},
	)
	if err != nil {
		return fmt.Errorf("profile add jaap %s: %w", userID, err)
	}
	return nil
}

// SubtractTotal atomically removes amount from totalJaap, clamped at zero.
func (r *Repo) SubtractTotal(ctx context.Context, userID string, amount uint64) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPSERT type::thing($tb, $uid) SET totalJaap = math::max([(totalJaap ?? 0) - $amount, 0])`,
		map[string]any{"tb": table, "uid": userID, "amount": amount},
	)
	if err != nil {
		return fmt.Errorf("profile subtract %s: %w", userID, err)
	}
	return nil
}

// SetStreak overwrites the consecutive-day counter.
func (r *Repo) SetStreak(ctx context.Context, userID string, streak uint64) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPSERT type::thing($tb, $uid) SET currentStreak = $streak`,
		map[string]any{"tb": table, "uid": userID, "streak": streak},
	)
	if err != nil {
		return fmt.Errorf("profile set streak %s: %w", userID, err)
	}
	return nil
}

// UpdateSettings overwrites the preference fields on the profile document.
func (r *Repo) UpdateSettings(ctx context.Context, userID string, s domain.Settings) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPSERT type::thing($tb, $uid) SET dailyTarget = $target, soundEnabled = $sound, displayName = $name`,
		map[string]any{
			"tb": table, "uid": userID,
			"target": s.DailyTarget, "sound": s.SoundEnabled, "name": s.DisplayName,
		},
	)
	if err != nil {
		return fmt.Errorf("profile update settings %s: %w", userID, err)
	}
	return nil
}

// Delete removes the profile document. Missing records are a no-op.
func (r *Repo) Delete(ctx context.Context, userID string) error {
	if _, err := surrealdb.Delete[struct{}](ctx, r.db, models.NewRecordID(table, userID)); err != nil {
		return fmt.Errorf("profile delete %s: %w", userID, err)
	}
	return nil
}

// All returns every profile document (collection-wide read; the deployment
// holds exactly two).
func (r *Repo) All(ctx context.Context) ([]domain.UserProfile, error) {
	recs, err := surrealdb.Select[[]record](ctx, r.db, table)
	if err != nil {
		return nil, fmt.Errorf("profile list: %w", err)
	}
	if recs == nil {
		return nil, nil
	}
	out := make([]domain.UserProfile, 0, len(*recs))
	for _, rec := range *recs {
		id := ""
		if rec.ID != nil {
			id = fmt.Sprint(rec.ID.ID)
		}
		out = append(out, toDomain(id, rec))
	}
	return out, nil
}
