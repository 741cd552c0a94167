package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SscSPs/fx_rate_service/internal/adapters/provider/frankfurter"
	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	"github.com/SscSPs/fx_rate_service/internal/core/services"
	"github.com/SscSPs/fx_rate_service/internal/handlers"
	"github.com/SscSPs/fx_rate_service/internal/metrics"
	"github.com/SscSPs/fx_rate_service/internal/middleware"
	"github.com/SscSPs/fx_rate_service/internal/platform/config"
	"github.com/SscSPs/fx_rate_service/internal/repositories/database/badgerdb"
	"github.com/SscSPs/fx_rate_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/fx_rate_service/internal/scheduler"
	"github.com/SscSPs/fx_rate_service/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title FX Rate Service API
// @version 1.0
// @description Stores pivot-currency exchange rates fetched from Frankfurter and converts amounts between any two stored currencies.

// @host localhost:8080
// @BasePath /api/fx
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize rate store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if repos.Close == nil {
			return
		}
		if cerr := repos.Close(); cerr != nil {
			logger.Error("Error closing rate store", slog.String("error", cerr.Error()))
		}
	}()

	appMetrics := metrics.NewMetrics()
	provider := frankfurter.NewClient(cfg.RateProviderURL, cfg.RateProviderTimeout, logger)
	serviceContainer := services.NewServiceContainer(cfg, repos, provider, logger, appMetrics)

	rateLimiter, err := middleware.NewIPRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.MetricsMiddleware(appMetrics))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, appMetrics, rateLimiter)

	refresher := scheduler.NewRateRefresher(serviceContainer.ExchangeRate, cfg.RefreshInterval, cfg.RefreshOnStartup, logger)
	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		refresher.Run(ctx)
	}()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("pivot", cfg.PivotCurrency), slog.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}

	select {
	case <-refresherDone:
	case <-shutdownCtx.Done():
		logger.Warn("Rate refresher did not stop before shutdown timeout")
	}

	logger.Info("Server exited")
}

// openStore connects the configured rate store and, for PostgreSQL, applies pending migrations.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverBadger:
		db, err := badgerdb.Open(cfg.BadgerPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Badger rate store opened.", slog.String("path", cfg.BadgerPath))
		return badgerdb.NewRepositoryProvider(db), nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, err
		}

		repos := pgsql.NewRepositoryProvider(dbPool)
		repos.Close = func() error {
			database.ClosePgxPool(dbPool)
			return nil
		}
		return repos, nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
