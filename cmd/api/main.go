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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/lindseymertz/lily/internal/adapters/primary/http"
	mw "github.com/lindseymertz/lily/internal/adapters/primary/http/middleware"
	"github.com/lindseymertz/lily/internal/adapters/secondary/seed"
	"github.com/lindseymertz/lily/internal/adapters/secondary/sqlite"
	"github.com/lindseymertz/lily/internal/config"
	"github.com/lindseymertz/lily/internal/core/services"
	"github.com/lindseymertz/lily/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Open Settings Storage
	ctx := context.Background()
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open settings storage", "error", err, "path", cfg.Storage.Path)
		os.Exit(1)
	}
	defer db.Close()
	settingsRepo := sqlite.NewSettingsRepository(db)
	logger.Info("settings storage ready", "path", cfg.Storage.Path)

	// 4. Load the Record Collection
	records, err := seed.NewSource().Load()
	if err != nil {
		logger.Error("failed to load record collection", "error", err)
		os.Exit(1)
	}
	logger.Info("record collection loaded", "records", len(records))

	// 5. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Stores and Services (Core)
	filterStore := services.NewFilterService(ctx, settingsRepo, logger)
	slaStore := services.NewSLAService(ctx, settingsRepo, logger)
	dashboardService := services.NewDashboardService(records, filterStore, slaStore, time.Now, logger)

	// Handlers (Primary Adapters)
	filtersHandler := httpAdapter.NewFiltersHandler(filterStore, errorHandler, time.Now, logger)
	slaHandler := httpAdapter.NewSLAHandler(slaStore, errorHandler, logger)
	dashboardHandler := httpAdapter.NewDashboardHandler(dashboardService, errorHandler, httpAdapter.DashboardDefaults{
		SparklineDays:  cfg.Dashboard.SparklineDays,
		ComparisonDays: cfg.Dashboard.ComparisonDays,
	}, logger)
	requestsHandler := httpAdapter.NewRequestsHandler(dashboardService, errorHandler, logger)
	exportHandler := httpAdapter.NewExportHandler(dashboardService, time.Now, logger)
	healthHandler := httpAdapter.NewHealthHandler(settingsRepo, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         cfg.CORS.MaxAge,
	}))

	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	healthHandler.RegisterRoutes(r)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/filters", filtersHandler.RegisterRoutes)
		r.Route("/presets", filtersHandler.RegisterPresetRoutes)
		r.Route("/sla", slaHandler.RegisterRoutes)
		r.Route("/dashboard", dashboardHandler.RegisterRoutes)
		r.Route("/requests", requestsHandler.RegisterRoutes)
		r.Route("/export", exportHandler.RegisterRoutes)
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
