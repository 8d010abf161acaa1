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

	_ "github.com/ekurt/depot/docs" // Import generated swagger docs
	appControllers "github.com/ekurt/depot/internal/app/controllers"
	appMigrations "github.com/ekurt/depot/internal/app/migrations"
	appRepos "github.com/ekurt/depot/internal/app/repositories"
	appRoutes "github.com/ekurt/depot/internal/app/routes"
	appServices "github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/config"
	"github.com/ekurt/depot/internal/db"
	appMiddleware "github.com/ekurt/depot/internal/middleware"
	"github.com/ekurt/depot/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StockService        *appServices.StockService
	BorrowService       *appServices.BorrowService
	CourseService       *appServices.CourseService
	PurchaseService     *appServices.PurchaseService
	SearchService       *appServices.SearchService
	AnalyticsService    *appServices.AnalyticsService
	StockController     *appControllers.StockController
	BorrowController    *appControllers.BorrowController
	CourseController    *appControllers.CourseController
	PurchaseController  *appControllers.PurchaseController
	SearchController    *appControllers.SearchController
	AnalyticsController *appControllers.AnalyticsController
	Repos               *appRepos.Repositories
	Logger              zerolog.Logger
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
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.StockService = appServices.NewStockService(
		deps.Repos.StockRepository,
		deps.Repos.StockTransactionRepository,
		lgr,
	)
	deps.BorrowService = appServices.NewBorrowService(
		deps.Repos.StockRepository,
		deps.Repos.BorrowRepository,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.CourseItemRepository,
		deps.Repos.StockRepository,
		deps.Repos.StockRepository,
		deps.Repos.StockTransactionRepository,
		lgr,
	)
	deps.PurchaseService = appServices.NewPurchaseService(
		deps.Repos.PurchaseRepository,
		deps.StockService,
		lgr,
	)
	deps.SearchService = appServices.NewSearchService(deps.Repos.SearchRepository, lgr)
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.AnalyticsRepository, lgr)

	deps.StockController = appControllers.NewStockController(deps.StockService)
	deps.BorrowController = appControllers.NewBorrowController(deps.BorrowService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.PurchaseController = appControllers.NewPurchaseController(deps.PurchaseService)
	deps.SearchController = appControllers.NewSearchController(deps.SearchService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.StockController,
		deps.BorrowController,
		deps.CourseController,
		deps.PurchaseController,
		deps.SearchController,
		deps.AnalyticsController,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
