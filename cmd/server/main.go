package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mueblesstgo-roster/internal/api"
	"github.com/mueblesstgo-roster/internal/config"
	"github.com/mueblesstgo-roster/internal/database"
	"github.com/mueblesstgo-roster/internal/repository"
	"github.com/mueblesstgo-roster/internal/service"
	"github.com/mueblesstgo-roster/internal/views"
	"github.com/mueblesstgo-roster/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("employee_source", cfg.Employees.Source).Msg("Starting MueblesStgo roster server...")

	// Initialize repositories
	var repos *repository.Repositories
	switch cfg.Employees.Source {
	case config.SourcePostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		version, err := db.RunMigrations(cfg.Database.MigrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		log.Info().
			Str("employee_source", cfg.Employees.Source).
			Uint("schema_version", version).
			Msg("Roster database ready")
		repos = repository.NewPostgres(db)
	default:
		repos = repository.NewMemory()
	}

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Start staging session sweeper
	services.Staging.StartSweeper(context.Background())
	log.Info().Dur("ttl", cfg.Upload.SessionTTL).Msg("Staging session sweeper started")

	// Initialize router
	router := api.NewRouter(services, views.DefaultRoutes(), cfg, log)

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

	// Stop staging sweeper
	services.Staging.StopSweeper()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
