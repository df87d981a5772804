// AURA - voice assistant relay server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aura/internal/command"
	"aura/internal/config"
	"aura/internal/httpapi"
	"aura/internal/middleware"
	"aura/internal/orchestrator"
	"aura/internal/provider"
	"aura/internal/scan"
	"aura/internal/store"
	"aura/internal/telemetry"
	"aura/internal/timer"
	"aura/web"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := telemetry.InitLogger(cfg.Debug)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, meter, telemetryCleanup, err := telemetry.InitTelemetry(ctx)
	if err != nil {
		logger.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer telemetryCleanup()

	logger.Info("Starting server", "port", cfg.Port, "providers", cfg.ProviderOrder)

	// Transcript log is best-effort: the relay serves without it.
	var transcriptLog store.TranscriptLog
	transcriptLog, err = store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Warn("Transcript log unavailable, continuing without it", "error", err)
		transcriptLog = store.Nop{}
	}
	defer func() {
		if closeErr := transcriptLog.Close(); closeErr != nil {
			logger.Error("Failed to close transcript log", "error", closeErr)
		}
	}()

	// Core wiring.
	clients := provider.FromConfig(cfg, provider.Deps{
		HTTPClient: &http.Client{Timeout: cfg.ProviderTimeout},
		Tracer:     tracer,
		Meter:      meter,
	})
	orch := orchestrator.New(clients, cfg.CacheTTL, logger)
	registry := timer.NewRegistry(cfg.SessionDuration, cfg.SessionRestartPolicy)
	router := command.NewRouter(registry, orch, logger)
	handler := httpapi.NewHandler(router, orch, scan.NewStub(nil), transcriptLog, logger)

	// Evict stale timer sessions in the background.
	go func() {
		ticker := time.NewTicker(cfg.TimerSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := registry.Sweep(cfg.SessionDuration); removed > 0 {
					logger.Info("Evicted stale timer sessions", "count", removed)
				}
			}
		}
	}()

	// Router setup.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	handler.RegisterRoutes(r)
	r.Handle("/*", web.Handler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.ProviderTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
