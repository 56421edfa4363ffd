package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-scheduling/config"
	deliveryHttp "hospital-scheduling/internal/delivery/http"
	"hospital-scheduling/internal/delivery/http/handler"
	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/domain/scheduling"
	"hospital-scheduling/internal/infrastructure/cache"
	"hospital-scheduling/internal/infrastructure/database"
	"hospital-scheduling/internal/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/jwt"
	"hospital-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	log := NewLogger(cfg)
	app := &App{Config: cfg, Log: log}

	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.App.Env == "production")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	handler, err := NewHandler(cfg, db, redisClient, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// NewLogger configures the logrus logger
func NewLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	if cfg != nil && cfg.App.Env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// GridOptions turns the schedule config into validated slot grid bounds
func GridOptions(cfg config.ScheduleConfig) (scheduling.GridOptions, error) {
	opts := scheduling.DefaultGridOptions()
	if cfg.GridStart != "" {
		opts.RangeStart = cfg.GridStart
	}
	if cfg.GridEnd != "" {
		opts.RangeEnd = cfg.GridEnd
	}
	if cfg.GridStepMinutes != 0 {
		opts.StepMinutes = cfg.GridStepMinutes
	}

	if err := opts.Validate(); err != nil {
		return scheduling.GridOptions{}, fmt.Errorf("invalid schedule config: %w", err)
	}
	return opts, nil
}

// NewHandler wires repositories, services, usecases and handlers into the API router.
func NewHandler(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) (http.Handler, error) {
	gridOptions, err := GridOptions(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	conflictChecker := service.NewConflictChecker(appointmentRepo)
	profileResolver := service.NewProfileResolver(doctorProfileRepo, patientProfileRepo)
	slotCache := service.NewSlotCacheService(redisClient, log, cfg.Schedule.GridCacheTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileResolver, auditService, jwtService, redisClient)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, availabilityRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, conflictChecker, auditService, slotCache)
	patientAppointmentUsecase := usecase.NewPatientAppointmentUsecase(db, log, appointmentRepo, doctorProfileRepo, patientProfileRepo,
		conflictChecker, auditService, slotCache)
	slotGridUsecase := usecase.NewSlotGridUsecase(db, log, appointmentRepo, availabilityRepo, doctorProfileRepo, slotCache, gridOptions)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, doctorProfileRepo, availabilityRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	patientAppointmentHandler := handler.NewPatientAppointmentHandler(patientAppointmentUsecase, customValidator)
	slotHandler := handler.NewSlotHandler(slotGridUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorProfileUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)

	router := deliveryHttp.NewRouter(log, authHandler, availabilityHandler, appointmentHandler, patientAppointmentHandler,
		slotHandler, doctorHandler, auditLogHandler, authMiddleware, corsMiddleware)
	return router.Setup(), nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the server fails
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
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
