package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindcare-backend/config"
	deliveryHttp "mindcare-backend/internal/delivery/http"
	"mindcare-backend/internal/delivery/http/handler"
	"mindcare-backend/internal/delivery/http/middleware"
	"mindcare-backend/internal/infrastructure/cache"
	"mindcare-backend/internal/infrastructure/database"
	"mindcare-backend/internal/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/jwt"
	"mindcare-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	SlotLocks   *service.SlotLockService
	Server      *http.Server
	Log         *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.MigrateOnStart {
		if err := database.RunMigrations(cfg.DB, log); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.SlotLocks = service.NewSlotLockService(redisClient, cfg.Booking.SlotLockTTL, log)

	// Initialize all layers
	app.Server = initializeServer(cfg, log, db, redisClient, app.SlotLocks)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, slotLocks service.SlotLocker) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	moodRepo := repository.NewMoodEntryRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	chatRepo := repository.NewChatSessionRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	notifier := service.NewNotificationService(log, alertRepo)
	assistant := service.NewAssistantService()

	policy := usecase.BookingPolicy{
		Location:           cfg.App.Location,
		CancellationWindow: cfg.Booking.CancellationWindow,
		UniqueSlot:         cfg.Booking.UniqueSlot,
	}

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, doctorRepo, notifier, auditService, slotLocks, policy)
	slotUsecase := usecase.NewSlotUsecase(log, appointmentRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(log, appointmentRepo, doctorRepo, messageRepo, moodRepo, chatRepo, auditService, cfg.App.Location)
	alertUsecase := usecase.NewAlertUsecase(log, alertRepo, doctorRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, doctorRepo, appointmentRepo, auditService)
	moodUsecase := usecase.NewMoodUsecase(log, moodRepo, doctorRepo, appointmentRepo, auditService)
	messageUsecase := usecase.NewMessageUsecase(log, messageRepo, auditService)
	chatUsecase := usecase.NewChatUsecase(log, chatRepo, alertRepo, assistant, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	checks := map[string]handler.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	handlers := deliveryHttp.Handlers{
		Appointment: handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Slot:        handler.NewSlotHandler(slotUsecase),
		Dashboard:   handler.NewDashboardHandler(dashboardUsecase),
		Alert:       handler.NewAlertHandler(alertUsecase, customValidator),
		Doctor:      handler.NewDoctorHandler(doctorUsecase, customValidator),
		Patient:     handler.NewPatientHandler(patientUsecase, customValidator),
		Mood:        handler.NewMoodHandler(moodUsecase, customValidator),
		Message:     handler.NewMessageHandler(messageUsecase, customValidator),
		Chat:        handler.NewChatHandler(chatUsecase, customValidator),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase),
		Health:      handler.NewHealthHandler(log, checks),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
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

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases the slot lock janitor, database and Redis connections
func (app *App) Close() {
	if app.SlotLocks != nil {
		app.SlotLocks.Stop()
	}

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
