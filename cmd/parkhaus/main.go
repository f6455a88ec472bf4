package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/parkhaus/parkhaus/internal/adapter/bcrypt"
	"github.com/parkhaus/parkhaus/internal/adapter/fsm"
	"github.com/parkhaus/parkhaus/internal/adapter/otel"
	riveradapter "github.com/parkhaus/parkhaus/internal/adapter/river"
	"github.com/parkhaus/parkhaus/internal/adapter/sqlite"
	"github.com/parkhaus/parkhaus/internal/app"
	"github.com/parkhaus/parkhaus/internal/domain"

	handler "github.com/parkhaus/parkhaus/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("parkhaus: %v", err)
	}
}

func run() error {
	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "parkhaus.db")
	seedMode := envOrDefault("PARKHAUS_SEED", "on")

	ctx := context.Background()

	// --- Telemetry ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	riverClient, err := riveradapter.Setup(ctx, db)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			slog.Warn("river stop", "error", err)
		}
	}()

	parking := otel.NewTracingParkingRepository(store.Parking)
	publisher := otel.NewTracingPublisher(riveradapter.NewPublisher(riverClient))
	hasher := bcrypt.New(0)
	validator := fsm.New()

	// --- Application ---
	engine := app.NewAssignmentEngine(parking, publisher)
	services := handler.Services{
		Tenants:    app.NewTenantService(store.Tenants, hasher, publisher, engine),
		Apartments: app.NewApartmentService(store.Apartments, validator, publisher),
		Parking:    app.NewParkingService(parking, validator, publisher),
		Engine:     engine,
	}

	// --- Bootstrap seed ---
	if seedMode != "off" {
		seeder := app.NewSeeder(store.Tenants, store.Apartments, parking, hasher, app.SeederConfig{
			AdminPassword: envOrDefault("ADMIN_PASSWORD", "admin123"),
		})
		outcome, err := seeder.EnsureSeeded(ctx)
		if err != nil {
			slog.Warn("seeding interrupted", "error", err)
		}
		slog.Info("bootstrap seed", "result", string(outcome.Result), "reason", outcome.Reason)
		if outcome.Result == domain.SeedDeferred {
			slog.Warn("store starts without sample data, seeding retries on next start")
		}
	}

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware("parkhaus", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("parkhaus", "0.1.0"))
	handler.Register(api, services)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("parkhaus listening", "port", port)
		slog.Info("api docs", "url", "http://localhost:"+port+"/docs")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
