package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/emirhan/staffgrade/docs" // Import generated swagger docs
	appControllers "github.com/emirhan/staffgrade/internal/app/controllers"
	appMigrations "github.com/emirhan/staffgrade/internal/app/migrations"
	appRepos "github.com/emirhan/staffgrade/internal/app/repositories"
	appRoutes "github.com/emirhan/staffgrade/internal/app/routes"
	appServices "github.com/emirhan/staffgrade/internal/app/services"
	"github.com/emirhan/staffgrade/internal/config"
	"github.com/emirhan/staffgrade/internal/db"
	appMiddleware "github.com/emirhan/staffgrade/internal/middleware"
	pkgAuth "github.com/emirhan/staffgrade/internal/pkg/auth"
	"github.com/emirhan/staffgrade/internal/pkg/email"
	"github.com/emirhan/staffgrade/internal/pkg/filestorage"
	"github.com/emirhan/staffgrade/internal/pkg/helpers"
	"github.com/emirhan/staffgrade/internal/pkg/logger"
	"github.com/emirhan/staffgrade/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	CourseService        *appServices.CourseService
	RosterService        *appServices.RosterService
	GraderService        *appServices.GraderService
	AssignmentService    *appServices.AssignmentService
	SubmissionService    *appServices.SubmissionService
	AuthController       *appControllers.AuthController
	RosterController     *appControllers.RosterController
	GraderController     *appControllers.GraderController
	AssignmentController *appControllers.AssignmentController
	SubmissionController *appControllers.SubmissionController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	EmailService         email.EmailService
	Logger               zerolog.Logger
	FileStorage          *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed the demo course in development mode (after migrations)
	if cfg.Server.Development {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Initialize file storage; baseURL must match the static file route.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		SessionExp:  helpers.ParseDuration(cfg.JWT.SessionExpiration, 12*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.CourseService = appServices.NewCourseService(
		deps.Repos.Courses,
		deps.Repos.Students,
		deps.Repos.Graders,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.Users,
		deps.CourseService,
		deps.JWTService,
	)
	deps.RosterService = appServices.NewRosterService(
		deps.Repos.Students,
		deps.Repos.Graders,
	)
	deps.GraderService = appServices.NewGraderService(
		deps.Repos.Graders,
		deps.Repos.Students,
		deps.Repos.Users,
		deps.Repos.Submissions,
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.Assignments,
		deps.Repos.Graders,
		deps.Repos.Submissions,
	)
	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.Submissions,
		deps.Repos.Assignments,
		deps.Repos.Courses,
		deps.Repos.Users,
		deps.Repos.Students,
		deps.Repos.Graders,
		deps.FileStorage,
		deps.EmailService,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.RosterController = appControllers.NewRosterController(deps.RosterService, deps.SubmissionService)
	deps.GraderController = appControllers.NewGraderController(deps.GraderService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, deps.SubmissionService)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Server-rendered roster pages
	router.LoadHTMLGlob(filepath.Join("web", "templates", "*.html"))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.RosterController,
		deps.GraderController,
		deps.AssignmentController,
		deps.SubmissionController,
		deps.AuthMiddleware,
		cfg.Server.Development,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
