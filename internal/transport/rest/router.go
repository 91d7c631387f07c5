package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/transport/middleware"
)

// apiRateLimit bounds requests per client IP per minute. Generous enough
// for fast mala tapping, tight enough to stop a looping client.
const apiRateLimit = 600

// NewRouter wires all REST endpoints behind the shared middleware chain.
func NewRouter(
	logger *slog.Logger,
	corsCfg config.CORSConfig,
	limiter *middleware.RateLimiter,
	counterH *CounterHandler,
	settingsH *SettingsHandler,
	healthH *HealthHandler,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthH.Health).Methods(http.MethodGet)
	r.HandleFunc("/live", healthH.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", healthH.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(limiter.Limit(apiRateLimit)))
	api.HandleFunc("/users", counterH.Users).Methods(http.MethodGet)

	user := api.PathPrefix("/users/{userId}").Subrouter()
	user.HandleFunc("/state", counterH.State).Methods(http.MethodGet)
	user.HandleFunc("/jaap/click", counterH.Click).Methods(http.MethodPost)
	user.HandleFunc("/jaap/manual", counterH.Manual).Methods(http.MethodPost)
	user.HandleFunc("/history", counterH.History).Methods(http.MethodGet)
	user.HandleFunc("/reset/daily", counterH.ResetDaily).Methods(http.MethodPost)
	user.HandleFunc("/reset/all", counterH.ResetAll).Methods(http.MethodPost)
	user.HandleFunc("/settings", settingsH.Get).Methods(http.MethodGet)
	user.HandleFunc("/settings", settingsH.Update).Methods(http.MethodPatch)

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(corsCfg),
		middleware.Logger(logger),
	)
	return chain(r)
}
