package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/domain"
	"github.com/jaapghar/jaapghar-backend/internal/service/counter"
)

// counterService defines the minimal interface needed by CounterHandler.
type counterService interface {
	Load(ctx context.Context, userID string) (counter.Snapshot, error)
	LoadCached(userID string) (counter.Snapshot, error)
	IncrementByClick(ctx context.Context, userID string) (counter.Snapshot, error)
	AddManual(ctx context.Context, userID string, count int64) (counter.Snapshot, error)
	GetHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]domain.DailySummary, error)
	ResetDailyCount(ctx context.Context, userID string) (counter.Snapshot, error)
	ResetAllData(ctx context.Context, userID, confirm string) (counter.Snapshot, error)
	Roster() []config.Sevak
}

// CounterHandler serves the jaap counting REST endpoints.
type CounterHandler struct {
	svc counterService
	log *slog.Logger
}

// NewCounterHandler creates a CounterHandler.
func NewCounterHandler(svc counterService, logger *slog.Logger) *CounterHandler {
	return &CounterHandler{svc: svc, log: logger.With("handler", "counter")}
}

type manualRequest struct {
	Count int64 `json:"count"`
}

type resetAllRequest struct {
	Confirm string `json:"confirm"`
}

type sevakResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type historyResponse struct {
	Filter string                `json:"filter"`
	Days   []domain.DailySummary `json:"days"`
}

// Users handles GET /api/users.
func (h *CounterHandler) Users(w http.ResponseWriter, r *http.Request) {
	roster := h.svc.Roster()
	out := make([]sevakResponse, 0, len(roster))
	for _, sv := range roster {
		out = append(out, sevakResponse{ID: sv.ID, DisplayName: sv.DisplayName})
	}
	writeJSON(w, http.StatusOK, out)
}

// State handles GET /api/users/{userId}/state. With ?cached=true the
// snapshot comes from the mirror only, skipping remote reconciliation.
func (h *CounterHandler) State(w http.ResponseWriter, r *http.Request) {
	userID := h.sevakID(r)

	var (
		snap counter.Snapshot
		err  error
	)
	if r.URL.Query().Get("cached") == "true" {
		snap, err = h.svc.LoadCached(userID)
	} else {
		snap, err = h.svc.Load(r.Context(), userID)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Click handles POST /api/users/{userId}/jaap/click. The response carries
// the optimistic snapshot; the remote write completes in the background,
// hence 202.
func (h *CounterHandler) Click(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.IncrementByClick(r.Context(), h.sevakID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, snap)
}

// Manual handles POST /api/users/{userId}/jaap/manual.
func (h *CounterHandler) Manual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.svc.AddManual(r.Context(), h.sevakID(r), req.Count)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, snap)
}

// History handles GET /api/users/{userId}/history.
func (h *CounterHandler) History(w http.ResponseWriter, r *http.Request) {
	filter := domain.ParseHistoryFilter(r.URL.Query().Get("filter"))

	days, err := h.svc.GetHistory(r.Context(), h.sevakID(r), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Filter: string(filter), Days: days})
}

// ResetDaily handles POST /api/users/{userId}/reset/daily.
func (h *CounterHandler) ResetDaily(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.ResetDailyCount(r.Context(), h.sevakID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ResetAll handles POST /api/users/{userId}/reset/all.
func (h *CounterHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	var req resetAllRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.svc.ResetAllData(r.Context(), h.sevakID(r), req.Confirm)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CounterHandler) sevakID(r *http.Request) string {
	return mux.Vars(r)["userId"]
}

func (h *CounterHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown sevak")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
