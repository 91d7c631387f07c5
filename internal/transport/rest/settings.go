package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
	"github.com/jaapghar/jaapghar-backend/internal/service/settings"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	Get(ctx context.Context, userID string) (domain.Settings, error)
	Update(ctx context.Context, userID string, in settings.UpdateInput) (domain.Settings, error)
	TargetPresets() []uint64
}

// SettingsHandler serves the per-sevak preferences endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type settingsResponse struct {
	DailyTarget   uint64   `json:"dailyTarget"`
	SoundEnabled  bool     `json:"soundEnabled"`
	DisplayName   string   `json:"displayName"`
	TargetPresets []uint64 `json:"targetPresets"`
}

// Get handles GET /api/users/{userId}/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	got, err := h.svc.Get(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(got))
}

// Update handles PATCH /api/users/{userId}/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	got, err := h.svc.Update(r.Context(), mux.Vars(r)["userId"], req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(got))
}

func (h *SettingsHandler) toResponse(s domain.Settings) settingsResponse {
	return settingsResponse{
		DailyTarget:   s.DailyTarget,
		SoundEnabled:  s.SoundEnabled,
		DisplayName:   s.DisplayName,
		TargetPresets: h.svc.TargetPresets(),
	}
}

func (h *SettingsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
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
