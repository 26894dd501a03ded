package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/acadeval/appraisehub/internal/app/auth"
	appControllers "github.com/acadeval/appraisehub/internal/app/controllers"
	appMigrations "github.com/acadeval/appraisehub/internal/app/migrations"
	appRepos "github.com/acadeval/appraisehub/internal/app/repositories"
	appRoutes "github.com/acadeval/appraisehub/internal/app/routes"
	appServices "github.com/acadeval/appraisehub/internal/app/services"
	"github.com/acadeval/appraisehub/internal/config"
	"github.com/acadeval/appraisehub/internal/db"
	appMiddleware "github.com/acadeval/appraisehub/internal/middleware"
	pkgAuth "github.com/acadeval/appraisehub/internal/pkg/auth"
	"github.com/acadeval/appraisehub/internal/pkg/cache"
	"github.com/acadeval/appraisehub/internal/pkg/helpers"
	"github.com/acadeval/appraisehub/internal/pkg/logger"
	"github.com/acadeval/appraisehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	EvaluatorGuard   *appAuth.EvaluatorGuard
	CacheInvalidator *cache.Invalidator

	AuthService      *appServices.AuthService
	DirectoryService *appServices.DirectoryService
	OrgService       *appServices.OrgService
	CycleService     *appServices.CycleService
	GradingService   *appServices.GradingService
	WorkflowService  *appServices.WorkflowService
	AppealService    *appServices.AppealService

	AuthController       *appControllers.AuthController
	AppraisalController  *appControllers.AppraisalController
	EvaluationController *appControllers.EvaluationController
	CycleController      *appControllers.CycleController
	GradingController    *appControllers.GradingController
	AppealController     *appControllers.AppealController
	OrgController        *appControllers.OrgController
	UserController       *appControllers.UserController

	Logger zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default organizational data.
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
	lgr.Info().Msg("Database connection successfully established")

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

	lgr.Info().Msg("Database migrations successfully applied")

	// Seeding failures are logged but never block startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EvaluatorGuard = appAuth.NewEvaluatorGuard(
		deps.Repos.AppraisalRepository,
		deps.Repos.UserRepository,
	)

	deps.CacheInvalidator = cache.NewInvalidator(cfg.Cache.RevalidateEndpoint, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.JWTService,
		lgr,
	)
	deps.DirectoryService = appServices.NewDirectoryService(deps.Repos.UserRepository)
	deps.OrgService = appServices.NewOrgService(
		deps.Repos.CollegeRepository,
		deps.Repos.DepartmentRepository,
		lgr,
	)
	deps.CycleService = appServices.NewCycleService(deps.Repos.CycleRepository, lgr)
	deps.GradingService = appServices.NewGradingService(
		deps.Repos.GradingConfigRepository,
		deps.Repos.CycleRepository,
		lgr,
	)
	deps.WorkflowService = appServices.NewWorkflowService(
		deps.Repos.AppraisalRepository,
		deps.Repos.EvaluationRepository,
		deps.Repos.SignatureRepository,
		deps.Repos.CycleRepository,
		deps.Repos.UserRepository,
		deps.EvaluatorGuard,
		deps.CacheInvalidator,
		lgr,
	)
	deps.AppealService = appServices.NewAppealService(deps.Repos.AppealRepository, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AppraisalController = appControllers.NewAppraisalController(deps.WorkflowService, deps.DirectoryService)
	deps.EvaluationController = appControllers.NewEvaluationController(deps.WorkflowService, deps.DirectoryService)
	deps.CycleController = appControllers.NewCycleController(deps.CycleService)
	deps.GradingController = appControllers.NewGradingController(deps.GradingService)
	deps.AppealController = appControllers.NewAppealController(deps.AppealService)
	deps.OrgController = appControllers.NewOrgController(deps.OrgService)
	deps.UserController = appControllers.NewUserController(deps.DirectoryService)

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
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.JWTService,
		deps.AuthController,
		deps.AppraisalController,
		deps.EvaluationController,
		deps.CycleController,
		deps.GradingController,
		deps.AppealController,
		deps.OrgController,
		deps.UserController,
	)

	return router
}
