package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cronosflow/config"
	deliveryHttp "cronosflow/internal/delivery/http"
	"cronosflow/internal/delivery/http/handler"
	"cronosflow/internal/delivery/http/middleware"
	"cronosflow/internal/infrastructure/cache"
	"cronosflow/internal/infrastructure/database"
	"cronosflow/internal/notify"
	"cronosflow/internal/payload"
	"cronosflow/internal/repository"
	"cronosflow/internal/service"
	"cronosflow/internal/usecase"
	"cronosflow/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
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
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis. The cache is read-through with a database fallback,
	// so a missing Redis degrades latency, not correctness.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logrus.Warnf("Redis unavailable, reference data will be served from the database: %v", err)
		redisClient = nil
	} else {
		logrus.Info("Redis connected successfully")
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	customerRepo := repository.NewCustomerRepository()
	serviceRepo := repository.NewServiceRepository()
	professionalRepo := repository.NewProfessionalRepository()
	licenseRepo := repository.NewLicenseRepository()

	// Initialize payload normalization
	dateResolver := payload.NewDateResolver(cfg.Booking.Location())
	normalizer := payload.NewNormalizer(dateResolver)

	// Initialize services
	refDataCache := service.NewRefDataCache(db, redisClient, log, serviceRepo, professionalRepo)
	whatsAppClient := notify.NewWhatsAppClient(cfg.WhatsApp, log)

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, cfg.Booking, appointmentRepo, refDataCache)
	bookingUsecase := usecase.NewBookingUsecase(db, log, cfg.Booking, appointmentRepo, customerRepo, refDataCache)
	licenseUsecase := usecase.NewLicenseUsecase(db, log, licenseRepo)
	confirmationUsecase := usecase.NewConfirmationUsecase(log, cfg.Booking, whatsAppClient)
	backupUsecase := usecase.NewBackupUsecase(db, log, appointmentRepo, customerRepo, serviceRepo, professionalRepo)

	// Initialize handlers
	exposeErrors := cfg.App.Env != "production"
	assistantHandler := handler.NewAssistantHandler(availabilityUsecase, bookingUsecase, normalizer, log, exposeErrors)
	licenseHandler := handler.NewLicenseHandler(licenseUsecase, customValidator)
	webhookHandler := handler.NewWebhookHandler(confirmationUsecase, log)
	backupHandler := handler.NewBackupHandler(backupUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(assistantHandler, licenseHandler, webhookHandler, backupHandler, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
