package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaapghar/jaapghar-backend/internal/adapter/surreal"
	"github.com/jaapghar/jaapghar-backend/internal/adapter/surreal/entry"
	"github.com/jaapghar/jaapghar-backend/internal/adapter/surreal/journal"
	"github.com/jaapghar/jaapghar-backend/internal/adapter/surreal/profile"
	"github.com/jaapghar/jaapghar-backend/internal/config"
	"github.com/jaapghar/jaapghar-backend/internal/mirror"
	"github.com/jaapghar/jaapghar-backend/internal/service/counter"
	"github.com/jaapghar/jaapghar-backend/internal/service/settings"
	"github.com/jaapghar/jaapghar-backend/internal/transport/middleware"
	"github.com/jaapghar/jaapghar-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects both
// stores, wires services and handlers, and serves HTTP until ctx is
// canceled, then drains in-flight background writes before returning.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	db, err := surreal.Connect(ctx, cfg.Surreal)
	if err != nil {
		// The engine is built to survive remote outages, but a failed first
		// connect usually means a misconfigured endpoint. Fail fast.
		return fmt.Errorf("connect surrealdb: %w", err)
	}
	defer db.Close(context.Background()) //nolint:errcheck

	store, err := mirror.Open(cfg.Mirror)
	if err != nil {
		return fmt.Errorf("open mirror: %w", err)
	}
	defer store.Close() //nolint:errcheck

	profileRepo := profile.New(db)
	entryRepo := entry.New(db)
	journalRepo := journal.New(db)

	counterSvc := counter.NewService(logger, cfg.Counter, profileRepo, entryRepo, journalRepo, store)
	settingsSvc := settings.NewService(logger, cfg.Counter, profileRepo, store)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(
		logger,
		cfg.CORS,
		limiter,
		rest.NewCounterHandler(counterSvc, logger),
		rest.NewSettingsHandler(settingsSvc, logger),
		rest.NewHealthHandler(surreal.Pinger{DB: db}, cfg.Surreal.PingTimeout, BuildVersion()),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if serr := srv.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
		}
	}()

	select {
	case err = <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http shutdown", slog.String("error", serr.Error()))
	}

	// Let queued remote writes finish so taps accepted right before the
	// signal still reach the remote store.
	counterSvc.Wait()
	logger.Info("stopped")
	return nil
}
