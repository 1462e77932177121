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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/alpersoy/polls/internal/app/controllers"
	appMigrations "github.com/alpersoy/polls/internal/app/migrations"
	appRepos "github.com/alpersoy/polls/internal/app/repositories"
	sqliteRepos "github.com/alpersoy/polls/internal/app/repositories/sqlite"
	appRoutes "github.com/alpersoy/polls/internal/app/routes"
	appServices "github.com/alpersoy/polls/internal/app/services"
	"github.com/alpersoy/polls/internal/config"
	"github.com/alpersoy/polls/internal/db"
	appMiddleware "github.com/alpersoy/polls/internal/middleware"
	pkgAuth "github.com/alpersoy/polls/internal/pkg/auth"
	"github.com/alpersoy/polls/internal/pkg/helpers"
	"github.com/alpersoy/polls/internal/pkg/logger"
	"github.com/alpersoy/polls/internal/seed"
	"github.com/alpersoy/polls/web"
)

// Storage bundles the repositories with whatever has to be closed on
// shutdown for the configured driver.
type Storage struct {
	Repos *appRepos.Repositories
	Close func()
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	QuestionService    *appServices.QuestionService
	AuthService        *appServices.AuthService
	PollController     *appControllers.PollController
	QuestionController *appControllers.QuestionController
	AuthController     *appControllers.AuthController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	JWTService         *pkgAuth.JWTService
	Repos              *appRepos.Repositories
	Logger             zerolog.Logger
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage establishes the configured database backend, runs
// migrations (postgres) or applies the schema (sqlite), and seeds
// default data.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	var storage *Storage

	switch cfg.Database.Driver {
	case "postgres":
		lgr.Info().Msg("Establishing postgres connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		dbPool := database.Pool

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			lgr.Error().Err(err).Msg("Failed to ping database")
			dbPool.Close()
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(dbPool)

		migrationsDir := "migrations"
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
			dbPool.Close()
			return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}

		if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			dbPool.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		storage = &Storage{
			Repos: appRepos.NewRepositories(dbPool),
			Close: dbPool.Close,
		}

	case "sqlite":
		lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("Opening sqlite database...")
		database, err := db.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open sqlite database")
			return nil, err
		}

		storage = &Storage{
			Repos: sqliteRepos.NewRepositories(database.DB),
			Close: func() { database.Close() },
		}

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	// Create default data after the schema is in place
	if err := seed.CreateDefaultData(context.Background(), storage.Repos, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return storage, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Repos: repos}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	authService, err := appServices.NewAuthService(deps.JWTService, cfg.Admin.Username, cfg.Admin.Password, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize auth service")
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	deps.AuthService = authService

	deps.QuestionService = appServices.NewQuestionService(repos.QuestionRepository, repos.ChoiceRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.PollController = appControllers.NewPollController(deps.QuestionService)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	// HTML templates are compiled into the binary
	router.SetHTMLTemplate(web.Templates())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API and poll page routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.PollController,
		deps.QuestionController,
		deps.AuthController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
