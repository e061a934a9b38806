package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/core/services"
	"github.com/bilgisen/bookshall-sub000/internal/handlers"
	"github.com/bilgisen/bookshall-sub000/internal/middleware"
	"github.com/bilgisen/bookshall-sub000/internal/platform/config"
	"github.com/bilgisen/bookshall-sub000/internal/platform/metrics"
	"github.com/bilgisen/bookshall-sub000/internal/platform/pricing"
	"github.com/bilgisen/bookshall-sub000/internal/repositories/database/pgsql"
	"github.com/bilgisen/bookshall-sub000/internal/utils"
	"github.com/bilgisen/bookshall-sub000/migrations"
	"github.com/bilgisen/bookshall-sub000/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := openPool(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return err
	}
	defer database.ClosePgxPool(dbPool, logger)

	if cfg.MigrationsOnStart {
		logger.Info("Running database migrations...")
		if err := database.Migrate(cfg.DatabaseURL, migrations.FS, database.MigrateUp, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}
	}

	prices, err := pricing.Load(cfg.PricingFile)
	if err != nil {
		return err
	}

	m := metrics.New()
	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	repos := pgsql.NewRepositoryProvider(dbPool, pgsql.CreditRepositoryOptions{
		StartingBalance: cfg.StartingBalance,
		MaxHistoryLimit: cfg.MaxHistoryLimit,
	}, logger)
	container := services.NewServiceContainer(cfg, repos, prices, m, analytics)

	r, err := newRouter(cfg, logger, m, analytics)
	if err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, m); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newRouter(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics, analytics *utils.PosthogClientWrapper) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(limiter),
		middleware.MetricsMiddleware(m),
		middleware.PosthogMiddleware(analytics),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	return r, nil
}
