package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/config"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
	appHTTP "github.com/cmlabs-hris/hris-analytics-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/hris-analytics-go/internal/service/analytics"
	snapshotService "github.com/cmlabs-hris/hris-analytics-go/internal/service/snapshot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := logging.ParseLevel(cfg.App.LogLevel)
	logger := appHTTP.NewHTTPLogger(os.Stdout, level,
		slog.String("app", "hris-analytics"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Analytics.Location
	now := func() time.Time { return time.Now().In(loc) }

	var (
		store        analytics.RecordStore
		snapshotRepo snapshot.SnapshotRepository
	)

	if cfg.IsDemo() {
		memStore := memory.NewRecordStore()
		memory.Seed(memStore, now())
		store = memStore
		snapshotRepo = memory.NewSnapshotRepository(memStore, now)
		logger.Info("Running on seeded in-memory store")
	} else {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		store = postgresql.NewRecordStore(db)
		snapshotRepo = postgresql.NewSnapshotRepository(db)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if cfg.IsDemo() {
		token, _, err := JWTService.GenerateAccessToken("demo", nil, auth.RoleManager)
		if err != nil {
			return fmt.Errorf("generate demo token: %w", err)
		}
		logger.Info("Demo access token", slog.String("token", token))
	}

	analyticsSvc := analyticsService.NewAnalyticsService(store, now)
	snapshotSvc := snapshotService.NewSnapshotService(snapshotRepo, store, now)

	scheduler := cron.NewScheduler(logger)
	cron.NewSnapshotJobs(snapshotSvc, cfg.Analytics.SnapshotRefreshInterval, logger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	snapshotHandler := appHTTP.NewSnapshotHandler(snapshotSvc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       level,
		AllowedOrigins: cfg.App.FrontendURLs,
		RequestTimeout: cfg.Analytics.RequestTimeout,
	}, JWTService, analyticsHandler, snapshotHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
