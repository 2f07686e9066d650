package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/cookie-orders-api/config"
	"github.com/kendall-kelly/cookie-orders-api/controllers"
	"github.com/kendall-kelly/cookie-orders-api/logger"
	"github.com/kendall-kelly/cookie-orders-api/metrics"
	"github.com/kendall-kelly/cookie-orders-api/repository"
	"github.com/kendall-kelly/cookie-orders-api/routes"
	"github.com/kendall-kelly/cookie-orders-api/services"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fx.New(appOptions()...).Run()
}

// appOptions returns the dependency graph of the API server
func appOptions() []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(
			config.Load,
			newLogger,
			newDatabase,
			repository.New,
			newReportService,
			newSeedService,
			newReportArchiver,
			newMetrics,
			newController,
			newRouter,
		),
		fx.Invoke(
			seedOnStartup,
			runHTTPServer,
		),
	}
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	log, err := logger.New(logger.Config{
		ServiceName: "cookie-orders-api",
		Environment: cfg.GoEnv,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

// newDatabase connects and migrates the schema. The pool is closed on shutdown.
func newDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := config.ConnectDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := config.Migrate(ctx, db); err != nil {
		_ = config.CloseDatabase(db)
		return nil, err
	}
	log.Info("Database migration completed successfully")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return config.CloseDatabase(db)
		},
	})
	return db, nil
}

func newReportService(cfg *config.Config, repo *repository.Repository, log *zap.Logger) (*services.ReportService, error) {
	loc, err := cfg.ReportLocation()
	if err != nil {
		return nil, err
	}
	return services.NewReportService(repo, loc, log.Named("report")), nil
}

func newSeedService(repo *repository.Repository, log *zap.Logger) *services.SeedService {
	return services.NewSeedService(repo, log.Named("seed"))
}

// newReportArchiver returns a disabled archiver when no bucket is configured
func newReportArchiver(cfg *config.Config, log *zap.Logger) (*services.ReportArchiver, error) {
	if !cfg.ArchiveEnabled() {
		log.Info("Report archive disabled: AWS_S3_BUCKET not set")
		return services.NewReportArchiver(nil, log), nil
	}

	storage, err := services.NewS3Storage(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Report archive enabled", zap.String("bucket", cfg.AWSS3Bucket))
	return services.NewReportArchiver(storage, log.Named("archive")), nil
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

func newController(
	repo *repository.Repository,
	reports *services.ReportService,
	seeder *services.SeedService,
	archiver *services.ReportArchiver,
	m *metrics.Metrics,
	log *zap.Logger,
) *controllers.Controller {
	return controllers.New(controllers.Deps{
		Store:    repo,
		Reports:  reports,
		Seeder:   seeder,
		Archiver: archiver,
		Metrics:  m,
		Logger:   log,
	})
}

func newRouter(cfg *config.Config, ctl *controllers.Controller, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	return routes.New(ctl, routes.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            m,
		Gatherer:           prometheus.DefaultGatherer,
		Logger:             log.Named("http"),
	})
}

func seedOnStartup(cfg *config.Config, seeder *services.SeedService, m *metrics.Metrics) error {
	if !cfg.SeedOnStartup {
		return nil
	}
	result, err := seeder.SeedDefaultProducts(context.Background())
	if err != nil {
		return err
	}
	m.Seeded(result.Created, result.Skipped)
	return nil
}

// runHTTPServer binds the port on start so a busy port fails startup, then
// serves in the background until the app stops.
func runHTTPServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Server is running", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
