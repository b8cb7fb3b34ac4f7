package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"teso/internal/app"
	"teso/internal/config"
	"teso/internal/handler"
	internalRedis "teso/internal/redis"
	"teso/internal/repository/postgres"
	"teso/internal/service"
	"teso/internal/simulation"
	"teso/internal/source"
	"teso/internal/store"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// PostgreSQL is one resolution rung, not a hard dependency. The
	// engine falls through to the seed file or synthesis without it.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Printf("PostgreSQL unavailable, continuing without durable store: %v", err)
		db = nil
	} else {
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		log.Println("Connected to PostgreSQL")
	}

	// Redis is likewise optional; without it the run snapshot lives on
	// disk only and simulation runs are not serialized.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Printf("Redis unavailable, continuing with disk-only snapshots: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Run snapshot store: Redis primary with a disk mirror, or disk only.
	fileStore := store.NewFileStore(cfg.Simulation.SnapshotPath)
	var runStore source.RunStore = fileStore
	var locks handler.SimulationLocker
	if redisClient != nil {
		runStore = store.NewMirrored(internalRedis.NewRunCache(redisClient), fileStore)
		locks = internalRedis.NewLockStore(redisClient)
	}

	// Source resolution ladder, most authoritative first.
	seedSource := source.NewSeedSource(cfg.Simulation.SeedPath)
	generator := simulation.NewGenerator(nil)
	sources := []source.Source{source.NewSnapshotSource(runStore)}

	var tripHandler *handler.TripHandler
	var datasetHandler *handler.DatasetHandler
	if db != nil {
		tripRepo := postgres.NewTripRepository(db)
		companyRepo := postgres.NewCompanyRepository(db)
		driverRepo := postgres.NewDriverRepository(db)
		sources = append(sources, source.NewDatabaseSource(tripRepo))

		datasetService := service.NewDatasetService(tripRepo, companyRepo, driverRepo, seedSource)
		tripHandler = handler.NewTripHandler(tripRepo)
		datasetHandler = handler.NewDatasetHandler(datasetService)
	}
	sources = append(sources, seedSource, source.NewSyntheticSource(generator.Generate))

	engine := simulation.NewEngine(source.NewResolver(sources...), runStore, nil)
	simulationHandler := handler.NewSimulationHandler(engine, runStore, locks)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		SimulationHandler: simulationHandler,
		TripHandler:       tripHandler,
		DatasetHandler:    datasetHandler,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
