package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombook-backend/config"
	"roombook-backend/internal/api"
	"roombook-backend/internal/auth"
	"roombook-backend/internal/booking"
	"roombook-backend/internal/catalog"
	"roombook-backend/internal/db"
	"roombook-backend/internal/notify"
	"roombook-backend/internal/refresh"
	"roombook-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "roombook-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	authMgr, err := auth.NewManager(cfg.Auth)
	if err != nil {
		logger.Fatalf("failed to initialize auth: %v", err)
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Ensure the configured administrator roster exists with hashed
	// credentials before any traffic arrives.
	for _, seed := range cfg.Admins {
		hash, err := authMgr.HashPassword(seed.Password)
		if err != nil {
			logger.Fatalf("failed to hash admin credential for %s: %v", seed.Email, err)
		}
		if err := appStore.EnsureAdmin(ctx, seed.Email, hash); err != nil {
			logger.Fatalf("failed to seed admin %s: %v", seed.Email, err)
		}
	}
	if len(cfg.Admins) > 0 {
		logger.Printf("seeded %d admin account(s)", len(cfg.Admins))
	}

	roomCatalog := catalog.New(cfg.Rooms)
	logger.Printf("room catalog loaded with %d rooms", roomCatalog.Len())

	// The availability search recomputes from the store on every query;
	// the admin grid reads the periodically refreshed snapshot.
	refresher := refresh.NewRefresher(appStore, cfg.Booking.RefreshInterval)
	liveSvc := booking.NewService(roomCatalog, appStore, cfg.Booking)
	gridSvc := booking.NewService(roomCatalog, refresher, cfg.Booking)
	go refresher.Run(ctx)

	// Notification fan-out runs on a background worker pool.
	pool := notify.NewWorkerPool(cfg.WorkerPool.Size, appStore)
	pool.Start(ctx)

	// Initialize router
	handler := api.NewHandler(appStore, roomCatalog, liveSvc, gridSvc, pool, authMgr)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
