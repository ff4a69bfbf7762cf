package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/erayozt/hakedis-sub001/internal/adapters/database/memory"
	"github.com/erayozt/hakedis-sub001/internal/adapters/database/pgsql"
	"github.com/erayozt/hakedis-sub001/internal/adapters/export"
	"github.com/erayozt/hakedis-sub001/internal/adapters/payout"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	"github.com/erayozt/hakedis-sub001/internal/core/services"
	"github.com/erayozt/hakedis-sub001/internal/handlers"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/erayozt/hakedis-sub001/internal/observability/metrics"
	"github.com/erayozt/hakedis-sub001/internal/platform/config"
	"github.com/erayozt/hakedis-sub001/internal/utils"
	"github.com/erayozt/hakedis-sub001/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a signed operator token for the given operator id and exit")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *issueToken != "" {
		token, err := utils.GenerateOperatorJWT(*issueToken, cfg.JWTSecret, cfg.JWTExpiryDuration)
		if err != nil {
			logger.Error("Failed to issue operator token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	metrics.Init()

	var repos portsrepo.RepositoryProvider
	if cfg.UsesDatabase() {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := runMigrations(cfg, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	} else {
		logger.Warn("PGSQL_URL not set, using the in-memory registry")
		repos = memory.NewRepositoryProvider(memory.NewRegistry())
	}

	renderer := export.NewRenderer(cfg.Currency, cfg.DisplayPrecision)
	serviceContainer := services.NewServiceContainer(cfg, repos, renderer, payout.NewLoggingHook(nil))

	approveLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", middleware.RequestIDHeader},
			AllowCredentials: true,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, approveLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("database", cfg.UsesDatabase()))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a short-lived database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Database migrations applied successfully.")
	return nil
}
