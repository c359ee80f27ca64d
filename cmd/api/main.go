package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/docs"
	"github.com/straye-as/estimate-api/internal/auth"
	"github.com/straye-as/estimate-api/internal/config"
	"github.com/straye-as/estimate-api/internal/database"
	"github.com/straye-as/estimate-api/internal/estimate"
	"github.com/straye-as/estimate-api/internal/generation"
	"github.com/straye-as/estimate-api/internal/http/handler"
	"github.com/straye-as/estimate-api/internal/http/middleware"
	"github.com/straye-as/estimate-api/internal/http/router"
	"github.com/straye-as/estimate-api/internal/jobs"
	"github.com/straye-as/estimate-api/internal/llm"
	"github.com/straye-as/estimate-api/internal/location"
	"github.com/straye-as/estimate-api/internal/logger"
	"github.com/straye-as/estimate-api/internal/repository"
	"github.com/straye-as/estimate-api/internal/service"
	"github.com/straye-as/estimate-api/internal/storage"
)

// @title Straye Estimate API
// @version 1.0
// @description Job estimates for contractors: deterministic pricing, model-written scope and permit guidance, saved estimates with CSV and PDF exports
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for system callers
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected", zap.String("driver", db.Dialector.Name()))

	// A local SQLite file is migrated in place; postgres goes through cmd/migrate
	if database.GooseDialect(cfg.Database.Driver) == "sqlite3" {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := database.Migrate(sqlDB, cfg.Database.Driver); err != nil {
			return err
		}
	}

	// Model client and pipeline
	llmClient, err := llm.New(ctx, llm.Config{
		Provider: cfg.LLM.Provider,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.TimeoutDuration(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize llm client: %w", err)
	}
	log.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("json_mode", cfg.LLM.JSONMode),
	)

	generator := generation.NewGenerator(llmClient, log, generation.WithJSONMode(cfg.LLM.JSONMode))

	var resolver location.Resolver = location.NewZippopotamResolver(location.Config{
		BaseURL: cfg.Location.BaseURL,
		Timeout: cfg.Location.TimeoutDuration(),
	}, log)

	var redisCache *location.RedisCache
	if cfg.Location.CacheEnabled {
		redisCache, err = location.NewRedisCache(ctx, cfg.Location.RedisAddr)
		if err != nil {
			// The cache only saves lookups, so the app runs without it
			log.Warn("Location cache unavailable, continuing without it",
				zap.String("redis_addr", cfg.Location.RedisAddr),
				zap.Error(err),
			)
		} else {
			resolver = location.NewCachedResolver(resolver, redisCache, cfg.Location.CacheTTLDuration(), log)
			log.Info("Location cache enabled",
				zap.String("redis_addr", cfg.Location.RedisAddr),
				zap.Duration("ttl", cfg.Location.CacheTTLDuration()),
			)
		}
	}

	assembler := estimate.NewAssembler(resolver, generator, log)

	// Export archive (optional)
	var archive storage.Storage
	if cfg.Export.ArchiveEnabled {
		archive, err = storage.NewStorage(ctx, &cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		log.Info("Export archive enabled", zap.String("mode", cfg.Storage.Mode))
	}

	// Initialize repositories and services
	estimateRepo := repository.NewEstimateRepository(db)
	exportService := service.NewExportService(estimateRepo, archive, log)

	var purger service.ArchivePurger
	if archive != nil {
		purger = exportService
	}
	estimateService := service.NewEstimateService(estimateRepo, assembler, purger, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	if !authMiddleware.Enabled() {
		log.Warn("No API key or JWT secret configured, API authentication is disabled")
	}
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		handler.NewHealthHandler(db, log),
		handler.NewEstimateHandler(estimateService, log),
		handler.NewGenerateHandler(estimateService, log),
		handler.NewExportHandler(exportService, log),
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if archive != nil && cfg.Export.PruneCron != "" {
		scheduler = jobs.NewScheduler(log)
		pruneJob := jobs.NewArchivePruneJob(exportService, cfg.Export.PruneConcurrency, 10*time.Minute, log)
		if err := scheduler.AddJob(jobs.ArchivePruneJobName, cfg.Export.PruneCron, pruneJob.Run); err != nil {
			log.Error("Failed to register archive prune job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with archive prune job",
				zap.String("cron_expr", cfg.Export.PruneCron),
				zap.Int("concurrency", cfg.Export.PruneConcurrency),
			)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if redisCache != nil {
			if err := redisCache.Close(); err != nil {
				log.Warn("Error closing location cache", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
