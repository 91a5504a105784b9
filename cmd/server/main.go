package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/timesheet-sync-api/internal/api"
	"github.com/timesheet-sync-api/internal/config"
	"github.com/timesheet-sync-api/internal/database"
	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/exceltime"
	"github.com/timesheet-sync-api/internal/repository"
	"github.com/timesheet-sync-api/internal/service"
	"github.com/timesheet-sync-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Timesheet Sync API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize workbook client
	workbook, err := excel.NewClient(&cfg.Excel, &cfg.SharePoint, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize workbook client")
	}
	defer workbook.Close()

	// Resolve the workbook display timezone
	loc := exceltime.ResolveLocation(cfg.Excel.Timezone, cfg.Excel.FallbackTimezone, log)
	codec := exceltime.NewCodec(loc)
	log.Info().Str("timezone", loc.String()).Msg("Workbook timezone resolved")

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, workbook, codec, cfg, log)

	// Start the sync scheduler, if enabled
	scheduler := service.NewScheduler(services.Sync, cfg.Sync.Interval, log)
	go scheduler.Start(context.Background())

	// Initialize router
	router := api.NewRouter(services, repos, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop scheduled syncs
	scheduler.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
