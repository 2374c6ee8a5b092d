// cmd/api/main.go
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

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"libraledger/internal/analytics"
	"libraledger/internal/api"
	"libraledger/internal/catalog"
	"libraledger/internal/config"
	"libraledger/internal/inventory"
	"libraledger/internal/lending"
	"libraledger/internal/membership"
	"libraledger/internal/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := observability.NewLogger()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	ledger := inventory.NewLedger(inventory.NewPostgresStore(db), logger)
	catalogService := catalog.NewService(catalog.NewPostgresStore(db), ledger, logger)
	membershipService := membership.NewService(membership.NewPostgresStore(db))
	lendingService := lending.NewService(lending.NewPostgresStore(db), ledger, logger)
	analyticsService := analytics.NewService(analytics.NewPostgresStore(db), logger)

	router := api.NewRouter(api.Handlers{
		Catalog:    catalog.NewHandler(catalogService),
		Membership: membership.NewHandler(membershipService),
		Lending:    lending.NewHandler(lendingService),
		Analytics:  analytics.NewHandler(analyticsService),
	}, api.Options{
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
