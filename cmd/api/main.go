package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kisanmitra/farm-analytics-api/docs" // Swagger docs
	"github.com/kisanmitra/farm-analytics-api/internal/analytics"
	"github.com/kisanmitra/farm-analytics-api/internal/config"
	"github.com/kisanmitra/farm-analytics-api/internal/database"
	"github.com/kisanmitra/farm-analytics-api/internal/handlers"
	"github.com/kisanmitra/farm-analytics-api/internal/jobs"
	"github.com/kisanmitra/farm-analytics-api/internal/middleware"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/remote"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/internal/services"
	"github.com/kisanmitra/farm-analytics-api/internal/storage"
	"github.com/kisanmitra/farm-analytics-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const workerQueueSize = 100

// @title Farm Analytics API
// @version 1.0
// @description Derives farm analytics (yield, efficiency, soil, infrastructure, recommendations) from farmer profiles
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		logger.Error("Failed to load rate table", "path", cfg.RateTablePath, "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	remoteClient := remote.New(cfg.RemoteAnalyticsURL, cfg.RemoteAnalyticsAPIKey, cfg.RemoteAnalyticsTimeout)
	if remoteClient.Enabled() {
		logger.Info("Remote analytics enabled", "url", cfg.RemoteAnalyticsURL, "timeout", cfg.RemoteAnalyticsTimeout)
	} else {
		logger.Info("Remote analytics disabled, computing locally")
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount, workerQueueSize)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, store, remoteClient, engine, cfg)
	if err := svcs.ExportJob.Recover(worker.Context()); err != nil {
		logger.Error("Failed to recover export jobs", "error", err)
	}

	scheduleJobs(worker, svcs, cfg)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// newEngine builds the analytics engine, merging rate overrides when a rate
// table file is configured
func newEngine(cfg *config.Config) (*analytics.Engine, error) {
	if cfg.RateTablePath == "" {
		return analytics.NewEngine(), nil
	}
	rates, err := analytics.LoadRateTable(cfg.RateTablePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded crop rate table", "path", cfg.RateTablePath, "crops", rates.Len())
	return analytics.NewEngine(analytics.WithRateTable(rates)), nil
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Stateless computation over a caller-supplied profile
			protected.POST("/analytics/compute", h.Analytics.Compute)

			// Farmer data access (Admin or Owner)
			farmer := protected.Group("/farmers/:farmer_id")
			farmer.Use(middleware.RequireAdminOrOwner())
			{
				farmer.GET("/analytics", h.Analytics.Show)
				farmer.GET("/analytics/export", h.Analytics.Export)
				farmer.GET("/profile", h.Analytics.ShowProfile)
				farmer.PUT("/profile", h.Analytics.SaveProfile)
			}

			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/exports", h.ExportJob.Create)
				admin.GET("/exports", h.ExportJob.Index)
				admin.GET("/exports/:job_id", h.ExportJob.Show)
				admin.POST("/exports/:job_id/retry", h.ExportJob.Retry)
				admin.GET("/exports/:job_id/download", h.ExportJob.Download)

				admin.GET("/profiles", h.Analytics.ListProfiles)
				admin.GET("/audits", h.Audit.Index)
				admin.GET("/jobs/status", h.Job.Status)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	if cfg.SummaryExportInterval <= 0 {
		return
	}
	// Periodic all-farmer summary, picked up by the same pool as manual exports
	worker.ScheduleEvery("summary-export", cfg.SummaryExportInterval, func(ctx context.Context) error {
		logger.Info("[Job] Queueing scheduled summary export...")
		return svcs.ExportJob.RunScheduled(ctx, models.ExportFormatCSV)
	})

	logger.Info("Scheduled recurring jobs", "summary_export_interval", cfg.SummaryExportInterval)
}
