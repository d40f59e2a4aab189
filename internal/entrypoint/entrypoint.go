package entrypoint

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/audit"
	"github.com/mrlokans/digital-library/internal/config"
	http_controllers "github.com/mrlokans/digital-library/internal/http"
	"github.com/mrlokans/digital-library/internal/logging"
	"github.com/mrlokans/digital-library/internal/metrics"
	"github.com/mrlokans/digital-library/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL cannot be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the cleanup scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger := logging.NewLogger(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting digital library",
		zap.String("version", version),
		zap.String("driver", string(cfg.Database.Driver)),
	)
	logEnvFile(cfg, logger)

	stores, err := OpenStores(context.Background(), cfg.Database, logger, false)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	routerCfg := http_controllers.RouterConfig{
		Books:          stores.Books,
		Members:        stores.Members,
		Staff:          stores.Staff,
		Database:       stores.Pinger,
		DatabaseDriver: string(cfg.Database.Driver),
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		QueryTimeout:   cfg.Database.QueryTimeout,
		Version:        version,
	}

	var auditService *audit.Service
	var cleanup *scheduler.AuditCleanupScheduler
	if cfg.Audit.Enabled {
		auditService = audit.NewService(stores.Audit, logger)
		routerCfg.Auditor = auditService
		routerCfg.AuditEvents = auditService

		cleanup = scheduler.NewAuditCleanupScheduler(auditService, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, logger)
		if err := cleanup.Start(); err != nil {
			logger.Fatal("failed to start audit cleanup scheduler", zap.Error(err))
		}
	} else {
		logger.Info("audit trail disabled")
	}

	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metrics.New()
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanup != nil {
			cleanup.Stop()
		}
	}

	Serve(router, cfg, logger, onShutdown)

	if auditService != nil {
		auditService.Wait()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()
	if err := stores.Close(ctx); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}
}

// InitDB creates the schema (SQLite) or the indexes (MongoDB) and exits.
func InitDB(cfg *config.Config) error {
	logger := logging.NewLogger(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}

	logEnvFile(cfg, logger)

	ctx := context.Background()
	stores, err := OpenStores(ctx, cfg.Database, logger, true)
	if err != nil {
		return err
	}
	logger.Info("database initialized", zap.String("driver", string(cfg.Database.Driver)))

	closeCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	return stores.Close(closeCtx)
}

func logEnvFile(cfg *config.Config, logger *zap.Logger) {
	if !cfg.Global.EnvFileLoaded {
		logger.Info("no .env file found, using environment variables")
	}
}
