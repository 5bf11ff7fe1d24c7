package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	enrollmentapp "github.com/lms/backend/internal/application/enrollment"
	identityapp "github.com/lms/backend/internal/application/identity"
	learningapp "github.com/lms/backend/internal/application/learning"
	orgapp "github.com/lms/backend/internal/application/org"
	peopleapp "github.com/lms/backend/internal/application/people"
	"github.com/lms/backend/internal/infrastructure/auth"
	"github.com/lms/backend/internal/infrastructure/config"
	"github.com/lms/backend/internal/infrastructure/logger"
	"github.com/lms/backend/internal/infrastructure/mail"
	"github.com/lms/backend/internal/infrastructure/persistence"
	"github.com/lms/backend/internal/infrastructure/storage"
	"github.com/lms/backend/internal/infrastructure/telemetry"
	"github.com/lms/backend/internal/interfaces/http/handler"
	"github.com/lms/backend/internal/interfaces/http/middleware"
	"github.com/lms/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting LMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Redis backs the token blacklist and password reset store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	var blacklist auth.TokenBlacklist
	var resetStore auth.ResetTokenStore
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token stores", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		resetStore = auth.NewInMemoryResetTokenStore()
	} else {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		resetStore = auth.NewRedisResetTokenStore(redisClient)
		log.Info("Redis connected successfully")
	}

	// Transactional email for password reset delivery
	var mailer mail.Mailer
	if cfg.Mail.SendgridKey != "" {
		mailer = mail.NewSendgridMailer(cfg.Mail, mail.WithLogger(log))
	} else {
		log.Warn("No mail provider configured, password reset emails will not be sent")
		mailer = mail.NewLogMailer(log)
	}

	// Object storage for tenant branding assets
	var objectStore storage.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStore = s3Store
	} else {
		log.Warn("No storage bucket configured, using in-memory object storage")
		objectStore = storage.NewInMemoryObjectStorage()
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormSystemUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	programRepo := persistence.NewGormProgramRepository(db.DB)
	specializationRepo := persistence.NewGormSpecializationRepository(db.DB)
	courseRepo := persistence.NewGormCourseRepository(db.DB)
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	teacherRepo := persistence.NewGormTeacherRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, resetStore, mailer, log)
	tenantService := identityapp.NewTenantService(tenantRepo, objectStore, log)
	userService := identityapp.NewUserService(userRepo, log)
	clientService := orgapp.NewClientService(clientRepo, log)
	programService := learningapp.NewProgramService(programRepo, log)
	specializationService := learningapp.NewSpecializationService(specializationRepo, programRepo, log)
	courseService := learningapp.NewCourseService(courseRepo, specializationRepo, teacherRepo, log)
	studentService := peopleapp.NewStudentService(studentRepo, clientRepo, log)
	teacherService := peopleapp.NewTeacherService(teacherRepo, log)
	enrollmentService := enrollmentapp.NewEnrollmentService(enrollmentRepo, courseRepo, studentRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	programHandler := handler.NewProgramHandler(programService)
	specializationHandler := handler.NewSpecializationHandler(specializationService)
	courseHandler := handler.NewCourseHandler(courseService)
	studentHandler := handler.NewStudentHandler(studentService)
	teacherHandler := handler.NewTeacherHandler(teacherService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	systemHandler := handler.NewSystemHandler(db, redisClient)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// JWT authentication with public paths excluded
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths,
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authHandler).
		Register(tenantHandler).
		Register(userHandler).
		Register(clientHandler).
		Register(programHandler).
		Register(specializationHandler).
		Register(courseHandler).
		Register(studentHandler).
		Register(teacherHandler).
		Register(enrollmentHandler).
		Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
