package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"

	"fleet/internal/app"
	"fleet/internal/config"
	"fleet/internal/handler"
	internalRedis "fleet/internal/redis"
	"fleet/internal/repository"
	"fleet/internal/repository/memory"
	"fleet/internal/repository/postgres"
	"fleet/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so datastores can be instrumented.
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
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize the store backend.
	var store repository.Store
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		store = postgres.NewStore(db)
		log.Println("Connected to PostgreSQL")
	case config.BackendMemory:
		store = memory.NewStore()
		log.Println("Using in-memory store")
	default:
		log.Fatalf("unknown store backend: %q", cfg.Store.Backend)
	}

	// Initialize Redis when enabled: distributed locks, stats cache and
	// idempotent request replay. Without Redis the in-process lock store
	// covers single-instance deployments.
	var redisClient *goredis.Client
	var lockStore internalRedis.LockStoreInterface
	var cacheStore *internalRedis.CacheStore
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		lockStore = internalRedis.NewLockStore(redisClient)
		cacheStore = internalRedis.NewCacheStore(redisClient)
		log.Println("Connected to Redis")
	} else {
		lockStore = memory.NewLockStore()
	}

	// Wire dependencies.
	server := wireServer(store, lockStore, cacheStore, redisClient, nrApp, cfg)

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
func wireServer(
	store repository.Store,
	lockStore internalRedis.LockStoreInterface,
	cacheStore *internalRedis.CacheStore,
	redisClient *goredis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
) *http.Server {
	// Initialize services.
	availabilityService := service.NewAvailabilityService(store)
	vehicleService := service.NewVehicleService(store, cacheStore)
	driverService := service.NewDriverService(store, cacheStore)
	tripService := service.NewTripService(store, lockStore, cacheStore, cfg.Fleet.DefaultTripDuration)
	assignmentService := service.NewAssignmentService(store, lockStore, cacheStore, availabilityService)
	statsService := service.NewStatsService(store, cacheStore)

	// Initialize handlers.
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	driverHandler := handler.NewDriverHandler(driverService)
	tripHandler := handler.NewTripHandler(tripService, assignmentService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		VehicleHandler: vehicleHandler,
		DriverHandler:  driverHandler,
		TripHandler:    tripHandler,
		StatsHandler:   statsHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
