package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "propertymanager/docs"
	"propertymanager/internal/analytics"
	"propertymanager/internal/caching"
	"propertymanager/internal/common"
	"propertymanager/internal/config"
	"propertymanager/internal/handlers"
	"propertymanager/internal/jobs/background"
	"propertymanager/internal/middleware"
	"propertymanager/internal/repositories"
	"propertymanager/internal/services"
	"propertymanager/pkg/database"
)

const (
	appName         = "propertymanager"
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	var envFile, port string

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Property management back office API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")
	rootCmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		common.Logger.WithError(err).Error("Exiting")
		os.Exit(1)
	}
}

func loadConfig(envFile string) (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	common.InitLogger(appName, cfg.LogLevel)
	if cfg.Session.Generated {
		common.Logger.Warn("SESSION_SECRET is not set, using a generated secret; sessions will not survive a restart")
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	var cache caching.CacheService
	if cfg.Redis.Addr != "" {
		cache = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	} else {
		common.Logger.Warn("REDIS_ADDR is not set, sessions are kept in memory")
		cache = caching.NewMemoryCacheService()
	}
	defer cache.Close()

	var images services.ImageStore
	if cfg.Minio.Enabled() {
		images, err = services.NewMinioImageStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			return fmt.Errorf("failed to initialize image storage: %w", err)
		}
		if err := images.EnsureBucket(ctx); err != nil {
			common.Logger.WithError(err).Warnf("Image bucket %q is not ready", cfg.Minio.Bucket)
		}
	} else {
		common.Logger.Info("MINIO_ENDPOINT is not set, property images are disabled")
	}

	repos := repositories.New(pool)
	tx := repositories.NewTransactor(pool)

	authSvc := services.NewAuthService(repos.Users, cache, cache, services.AuthConfig{
		Secret:         cfg.Session.Secret,
		SessionTTL:     cfg.Session.TTL,
		LoginRateLimit: cfg.Session.LoginRateLimit,
	})
	userSvc := services.NewUserService(repos, tx)
	propertySvc := services.NewPropertyService(repos, tx, images)
	tenantSvc := services.NewTenantService(repos, tx)
	contractSvc := services.NewContractService(repos, tx)
	invoiceSvc := services.NewInvoiceService(repos, tx)
	maintenanceSvc := services.NewMaintenanceService(repos, tx)
	paymentSvc := services.NewPaymentService(repos, tx)
	dashboardSvc := analytics.NewDashboardService(repos.Dashboard)

	created, err := userSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if created {
		common.Logger.Infof("Created default admin user %q", cfg.Admin.Username)
	}

	if cfg.JobsEnabled {
		scheduler, err := background.NewJobScheduler(invoiceSvc, contractSvc, cfg.JobInterval)
		if err != nil {
			return fmt.Errorf("failed to create job scheduler: %w", err)
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				common.Logger.WithError(err).Warn("Job scheduler did not stop cleanly")
			}
		}()
	}

	e := newServer()
	handlers.RegisterRoutes(e, &handlers.Routes{
		Auth:        handlers.NewAuthHandlers(authSvc, cfg.Session.CookieSecure),
		Properties:  handlers.NewPropertyHandlers(propertySvc),
		Tenants:     handlers.NewTenantHandlers(tenantSvc),
		Contracts:   handlers.NewContractHandlers(contractSvc),
		Invoices:    handlers.NewInvoiceHandlers(invoiceSvc),
		Maintenance: handlers.NewMaintenanceHandlers(maintenanceSvc),
		Payments:    handlers.NewPaymentHandlers(paymentSvc),
		Users:       handlers.NewUserHandlers(userSvc),
		Dashboard:   handlers.NewDashboardHandlers(dashboardSvc),
		Health:      handlers.NewHealthHandlers(version, healthChecks(pool, cache, images)),
		Session:     middleware.SessionMiddleware(authSvc),
	})

	errCh := make(chan error, 1)
	go func() {
		common.Logger.Infof("Property manager v%s listening on :%s", version, cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	common.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = common.NewRequestValidator()
	e.HTTPErrorHandler = common.HTTPErrorHandler

	e.Use(echoMiddleware.Recover())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := common.Logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Debug("request")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	}))
	e.Use(middleware.Metrics())
	e.Use(middleware.AuditLog())
	e.Use(middleware.VersionHeader(version))
	return e
}

func healthChecks(pool *pgxpool.Pool, cache caching.CacheService, images services.ImageStore) map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": pool.Ping,
		"cache":    cache.Ping,
	}
	if images != nil {
		checks["storage"] = images.Ping
	}
	return checks
}
