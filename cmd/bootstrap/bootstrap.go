package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"clinic-scheduler/config"
	deliveryHttp "clinic-scheduler/internal/delivery/http"
	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/infrastructure/cache"
	"clinic-scheduler/internal/infrastructure/database"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/jwt"
	"clinic-scheduler/pkg/validator"

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
	LockService *service.ScheduleLockService
}

// New creates a new App instance with all dependencies initialized.
// ctx bounds the startup connection checks.
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(ctx, cfg.DB, cfg.App, logrus.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := database.MigrateUp(sqlDB); err != nil {
			return nil, err
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logrus.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.LockService = service.NewScheduleLockService(redisClient, logrus.StandardLogger(), cfg.Scheduling.LockTTL, cfg.Scheduling.LockWait)
	app.Server = initializeServer(cfg, db, redisClient, app.LockService)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, lockService *service.ScheduleLockService) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	personRepo := repository.NewPersonRepository()
	medicalProfileRepo := repository.NewMedicalProfileRepository()
	insuranceRecordRepo := repository.NewInsuranceRecordRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	emergencyContactRepo := repository.NewEmergencyContactRepository()
	facilityRepo := repository.NewFacilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	policy := entity.ParseBoundaryPolicy(cfg.Scheduling.BoundaryPolicy)
	log.Infof("Appointment boundary policy: %s", policy)
	auditService := service.NewAuditService(log, auditLogRepo)
	availabilityService := service.NewAvailabilityService(log, personRepo, appointmentRepo, policy)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, personRepo, jwtService, redisClient, auditService)
	profileUsecase := usecase.NewProfileUsecase(db, log, customValidator, personRepo, medicalProfileRepo,
		insuranceRecordRepo, doctorProfileRepo, emergencyContactRepo, facilityRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, cfg.App.Location(), personRepo, appointmentRepo,
		availabilityService, lockService, auditService)
	facilityUsecase := usecase.NewFacilityUsecase(db, log, facilityRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, profileUsecase, customValidator, jwtService)
	personHandler := handler.NewPersonHandler(profileUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase)
	facilityHandler := handler.NewFacilityHandler(facilityUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, personHandler, appointmentHandler, facilityHandler,
		auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// the server down gracefully and closes every connection.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("Clinic scheduler listening on %s (env: %s)", app.Server.Addr, app.Config.App.Env)
		serverErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.LockService != nil {
		app.LockService.Stop()
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
