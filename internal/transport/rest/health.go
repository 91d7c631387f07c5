package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// remotePinger is the health probe's view of the SurrealDB connection.
type remotePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	remote     remotePinger
	pingBudget time.Duration
	version    string
}

// NewHealthHandler creates a HealthHandler. pingBudget bounds each probe's
// round trip to the remote store.
func NewHealthHandler(remote remotePinger, pingBudget time.Duration, version string) *HealthHandler {
	return &HealthHandler{remote: remote, pingBudget: pingBudget, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready reports whether the service can take traffic. The mirror keeps the
// counter usable while SurrealDB is unreachable, so a failed ping reports
// degraded with 200 rather than 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.pingBudget)
	defer cancel()

	status := "ok"
	if err := h.remote.Ping(ctx); err != nil {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check: pings SurrealDB with latency measurement
// and includes the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.pingBudget)
	defer cancel()

	components := make(map[string]CompStatus)
	overall := "ok"

	start := time.Now()
	err := h.remote.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		components["surrealdb"] = CompStatus{Status: "down"}
		overall = "degraded"
	} else {
		components["surrealdb"] = CompStatus{
			Status:  "ok",
			Latency: latency.String(),
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
