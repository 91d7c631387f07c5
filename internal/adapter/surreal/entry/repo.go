// Package entry implements the per-(user, day) counter repository on SurrealDB.
package entry

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

const table = "entries"

// Repo provides daily entry persistence backed by SurrealDB.
type Repo struct {
	db *surrealdb.DB
}

// New creates a new entry repository.
func New(db *surrealdb.DB) *Repo {
	return &Repo{db: db}
}

type record struct {
	ID          *models.RecordID `json:"id,omitempty"`
	UserID      string           `json:"userId"`
	Date        string           `json:"date"`
	ClickCount  uint64           `json:"clickCount"`
	ManualCount uint64           `json:"manualCount"`
	TotalCount  uint64           `json:"totalCount"`
	Timestamp   int64            `json:"timestamp"`
}

func fromDomain(e domain.DailyEntry) record {
	id := models.NewRecordID(table, e.ID)
	return record{
		ID:          &id,
		UserID:      e.UserID,
		Date:        e.Date,
		ClickCount:  e.ClickCount,
		ManualCount: e.ManualCount,
		TotalCount:  e.TotalCount,
		Timestamp:   e.Timestamp,
	}
}

func toDomain(r record) domain.DailyEntry {
	return domain.DailyEntry{
		ID:          domain.EntryID(r.UserID, r.Date),
		UserID:      r.UserID,
		Date:        r.Date,
		ClickCount:  r.ClickCount,
		ManualCount: r.ManualCount,
		TotalCount:  r.TotalCount,
		Timestamp:   r.Timestamp,
	}
}

// Get returns the entry for (userID, date), or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID, date string) (*domain.DailyEntry, error) {
	id := domain.EntryID(userID, date)
	rec, err := surrealdb.Select[record](ctx, r.db, models.NewRecordID(table, id))
	if err != nil {
		return nil, fmt.Errorf("entry get %s: %w", id, err)
	}
	if rec == nil || rec.ID == nil {
		return nil, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	e := toDomain(*rec)
	return &e, nil
}

// Create writes the entry document, overwriting any previous version.
func (r *Repo) Create(ctx context.Context, e domain.DailyEntry) error {
	if _, err := surrealdb.Upsert[struct{}](ctx, r.db, models.NewRecordID(table, e.ID), fromDomain(e)); err != nil {
		return fmt.Errorf("entry create %s: %w", e.ID, err)
	}
	return nil
}

// AddCounts atomically bumps the entry counters. Exactly one of click/manual
// is non-zero per call; totalCount always moves by their sum so the
// click+manual==total invariant survives every completed write. UPSERT rather
// than UPDATE: since SurrealDB 2.0 an UPDATE against a missing record id
// matches nothing and reports success, which would silently drop the first
// tap of a fresh day. userId and date are set in the same statement so a
// record born here is visible to history queries.
func (r *Repo) AddCounts(ctx context.Context, userID, date string, click, manual uint64, ts int64) error {
	id := domain.EntryID(userID, date)
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPSERT type::thing($tb, $id) SET userId = $uid, date = $date, clickCount += $click, manualCount += $manual, totalCount += $total, timestamp = $ts`,
		map[string]any{
			"tb": table, "id": id, "uid": userID, "date": date,
			"click": click, "manual": manual, "total": click + manual, "ts": ts,
		},
	)
	if err != nil {
		return fmt.Errorf("entry add counts %s: %w", id, err)
	}
	return nil
}

// Overwrite replaces the whole document. The daily reset uses this to zero a
// day in place rather than deleting it.
func (r *Repo) Overwrite(ctx context.Context, e domain.DailyEntry) error {
	if _, err := surrealdb.Upsert[struct{}](ctx, r.db, models.NewRecordID(table, e.ID), fromDomain(e)); err != nil {
		return fmt.Errorf("entry overwrite %s: %w", e.ID, err)
	}
	return nil
}

// ListSince returns the user's summaries with date >= start (start "" means
// unbounded), sorted by date descending.
func (r *Repo) ListSince(ctx context.Context, userID, start string) ([]domain.DailySummary, error) {
	sql := `SELECT date, clickCount, manualCount, totalCount FROM type::table($tb) WHERE userId = $uid ORDER BY date DESC`
	vars := map[string]any{"tb": table, "uid": userID}
	if start != "" {
		sql = `SELECT date, clickCount, manualCount, totalCount FROM type::table($tb) WHERE userId = $uid AND date >= $start ORDER BY date DESC`
		vars["start"] = start
	}

	res, err := surrealdb.Query[[]domain.DailySummary](ctx, r.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("entry list %s: %w", userID, err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

// DeleteAll removes every entry document of the user.
func (r *Repo) DeleteAll(ctx context.Context, userID string) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`DELETE type::table($tb) WHERE userId = $uid`,
		map[string]any{"tb": table, "uid": userID},
	)
	if err != nil {
		return fmt.Errorf("entry delete all %s: %w", userID, err)
	}
	return nil
}
