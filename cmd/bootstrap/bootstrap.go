package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telehealth-api/config"
	deliveryHttp "telehealth-api/internal/delivery/http"
	"telehealth-api/internal/delivery/http/handler"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/infrastructure/cache"
	"telehealth-api/internal/infrastructure/database"
	"telehealth-api/internal/repository"
	"telehealth-api/internal/service"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/metrics"
	"telehealth-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	setupLogger(cfg.App.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, err
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(db); err != nil {
			app.Close()
			return nil, err
		}
	}

	var store cache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		store = cache.NewRedisCache(redisClient)
		logrus.Info("Redis connected successfully")
	} else {
		store = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		logrus.Info("Redis disabled, using in-process cache")
	}

	httpHandler, err := NewHandler(cfg, db, store, logrus.StandardLogger())
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, falling back to info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// NewHandler wires repositories, usecases and handlers into the HTTP router.
func NewHandler(cfg *config.Config, db *gorm.DB, store cache.Cache, log *logrus.Logger) (http.Handler, error) {
	customValidator := validator.NewValidator()
	m := metrics.NewMetrics("telehealth")

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	doctorRepo := repository.NewDoctorProfileRepository()
	patientRepo := repository.NewPatientProfileRepository()
	consultationRepo := repository.NewConsultationRepository()
	ratingRepo := repository.NewRatingRepository()
	providerRepo := repository.NewTransportProviderRepository()
	bookingRepo := repository.NewTransportBookingRepository()
	pharmacyRepo := repository.NewPharmacyRepository()
	medicineRepo := repository.NewMedicineRepository()
	inventoryRepo := repository.NewInventoryRepository()
	donationRepo := repository.NewDonationRepository()
	donationRequestRepo := repository.NewDonationRequestRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)
	availability := service.NewAvailabilityCache(store, cfg.Cache.TTL, log)

	// Initialize usecases
	accountUsecase := usecase.NewAccountUsecase(db, log, accountRepo, patientRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, accountRepo, doctorRepo, availability, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, accountRepo, doctorRepo, consultationRepo, auditService, m)
	ratingUsecase := usecase.NewRatingUsecase(db, log, doctorRepo, consultationRepo, ratingRepo, availability, auditService, m)
	transportUsecase := usecase.NewTransportUsecase(db, log, accountRepo, providerRepo, bookingRepo, availability, auditService, m, cfg.Transport.DefaultDistanceKm)
	pharmacyUsecase := usecase.NewPharmacyUsecase(db, log, pharmacyRepo, medicineRepo, inventoryRepo, auditService)
	donationUsecase := usecase.NewDonationUsecase(db, log, accountRepo, donationRepo, donationRequestRepo, auditService)
	adminUsecase := usecase.NewAdminUsecase(db, log, accountRepo, doctorRepo, consultationRepo, donationRepo, auditRepo, availability, auditService)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Account:      handler.NewAccountHandler(accountUsecase, customValidator),
		Doctor:       handler.NewDoctorHandler(doctorUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientUsecase, customValidator),
		Consultation: handler.NewConsultationHandler(consultationUsecase, customValidator),
		Rating:       handler.NewRatingHandler(ratingUsecase, customValidator),
		Transport:    handler.NewTransportHandler(transportUsecase, customValidator),
		Pharmacy:     handler.NewPharmacyHandler(pharmacyUsecase, customValidator),
		Donation:     handler.NewDonationHandler(donationUsecase, customValidator),
		Admin:        handler.NewAdminHandler(adminUsecase, customValidator),
	}

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	rateLimiter, err := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:           rate.Limit(cfg.RateLimit.RPS),
		Burst:          cfg.RateLimit.Burst,
		TrustedProxies: cfg.RateLimit.TrustedProxies,
		IdleTTL:        cfg.RateLimit.IdleTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure rate limiter: %w", err)
	}

	router := deliveryHttp.NewRouter(handlers, m, corsMiddleware, loggerMiddleware, rateLimiter)
	return router.Setup(), nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
