package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/merts/countdown-rsvp/docs" // This is required for swagger docs
	appControllers "github.com/merts/countdown-rsvp/internal/app/controllers"
	appMigrations "github.com/merts/countdown-rsvp/internal/app/migrations"
	appRepos "github.com/merts/countdown-rsvp/internal/app/repositories"
	appRoutes "github.com/merts/countdown-rsvp/internal/app/routes"
	appServices "github.com/merts/countdown-rsvp/internal/app/services"
	"github.com/merts/countdown-rsvp/internal/config"
	"github.com/merts/countdown-rsvp/internal/db"
	appMiddleware "github.com/merts/countdown-rsvp/internal/middleware"
	"github.com/merts/countdown-rsvp/internal/pkg/logger"
	"github.com/merts/countdown-rsvp/internal/pkg/poster"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RSVPService           *appServices.RSVPService
	LeaderboardService    *appServices.LeaderboardService
	RSVPController        *appControllers.RSVPController
	LeaderboardController *appControllers.LeaderboardController
	PosterGenerator       *poster.Generator
	Repos                 *appRepos.Repositories
	Logger                zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

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

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.PosterGenerator = poster.NewGenerator(cfg.App.BaseURL)

	deps.RSVPService = appServices.NewRSVPService(
		deps.Repos.ParticipantRepository,
		cfg.App.CodeAttempts,
		lgr,
	)
	deps.LeaderboardService = appServices.NewLeaderboardService(
		deps.Repos.ParticipantRepository,
		cfg.App.LeaderboardDefaultLimit,
		cfg.App.LeaderboardMaxLimit,
	)

	deps.RSVPController = appControllers.NewRSVPController(deps.RSVPService, deps.PosterGenerator)
	deps.LeaderboardController = appControllers.NewLeaderboardController(deps.LeaderboardService)

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

	// The landing page is served from a different origin
	router.Use(appMiddleware.CORS())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.RSVPController,
		deps.LeaderboardController,
	)

	return router
}
