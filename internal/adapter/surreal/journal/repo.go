// Package journal implements the append-only activity log repository on
// SurrealDB.
package journal

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

const table = "logs"

// Repo provides activity log persistence backed by SurrealDB.
type Repo struct {
	db *surrealdb.DB
}

// New creates a new journal repository.
func New(db *surrealdb.DB) *Repo {
	return &Repo{db: db}
}

type record struct {
	ID        *models.RecordID `json:"id,omitempty"`
	UserID    string           `json:"userId"`
	Date      string           `json:"date"`
	Type      string           `json:"type"`
	Count     uint64           `json:"count"`
	Timestamp int64            `json:"timestamp"`
}

// Append writes one activity event. Keys carry a random suffix so two taps
// landing in the same millisecond never collide.
func (r *Repo) Append(ctx context.Context, e domain.DailyLogEntry) error {
	id := fmt.Sprintf("%s_%s_%d_%s", e.UserID, e.Date, e.Timestamp, uuid.NewString()[:8])
	rec := record{
		UserID:    e.UserID,
		Date:      e.Date,
		Type:      string(e.Type),
		Count:     e.Count,
		Timestamp: e.Timestamp,
	}
	if _, err := surrealdb.Create[struct{}](ctx, r.db, models.NewRecordID(table, id), rec); err != nil {
		return fmt.Errorf("journal append %s: %w", id, err)
	}
	return nil
}

// ListForDay returns the user's events for one calendar day, newest first.
// Events with an unknown type are skipped at this boundary.
func (r *Repo) ListForDay(ctx context.Context, userID, date string) ([]domain.DailyLogEntry, error) {
	res, err := surrealdb.Query[[]record](ctx, r.db,
		`SELECT * FROM type::table($tb) WHERE userId = $uid AND date = $date`,
		map[string]any{"tb": table, "uid": userID, "date": date},
	)
	if err != nil {
		return nil, fmt.Errorf("journal list %s %s: %w", userID, date, err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}

	recs := (*res)[0].Result
	out := make([]domain.DailyLogEntry, 0, len(recs))
	for _, rec := range recs {
		t := domain.LogType(rec.Type)
		if !t.Valid() {
			continue
		}
		out = append(out, domain.DailyLogEntry{
			UserID:    rec.UserID,
			Date:      rec.Date,
			Type:      t,
			Count:     rec.Count,
			Timestamp: rec.Timestamp,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// DeleteForDay removes the user's log documents for one calendar day.
func (r *Repo) DeleteForDay(ctx context.Context, userID, date string) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`DELETE type::table($tb) WHERE userId = $uid AND date = $date`,
		map[string]any{"tb": table, "uid": userID, "date": date},
	)
	if err != nil {
		return fmt.Errorf("journal delete day %s %s: %w", userID, date, err)
	}
	return nil
}

// DeleteAll removes every log document of the user.
func (r *Repo) DeleteAll(ctx context.Context, userID string) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`DELETE type::table($tb) WHERE userId = $uid`,
		map[string]any{"tb": table, "uid": userID},
	)
	if err != nil {
		return fmt.Errorf("journal delete all %s: %w", userID, err)
	}
	return nil
}
