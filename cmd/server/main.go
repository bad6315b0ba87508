package main

import (
	"alcyxob/gym-buddy/internal/api"
	"alcyxob/gym-buddy/internal/app"
	"alcyxob/gym-buddy/internal/config"
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/service"
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Gym Buddy API
// @version 1.0
// @description Routines, workout sessions and history for a single lifter.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml and .env")
	flag.Parse()

	log.Println("Starting Gym Buddy Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (storage driver: %s).", cfg.Storage.Driver)
	service.InitValidator()

	ctx := context.Background()

	// --- Storage ---
	store, closeStore, err := app.OpenKVStore(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not open storage: %v", err)
	}
	defer func() {
		log.Println("Closing storage...")
		if err := closeStore(); err != nil {
			log.Printf("ERROR: Failed to close storage: %v", err)
		}
	}()

	// --- Initialize Services ---
	log.Println("Initializing services...")
	svcs, err := app.NewServices(ctx, store)
	if err != nil {
		log.Fatalf("FATAL: Could not load routines and history: %v", err)
	}
	ctl := controller.New(svcs.Routines, svcs.Workouts)

	// --- Offline Asset Cache ---
	var assetHandler gin.HandlerFunc
	assets, err := app.NewAssetWorker(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize asset cache: %v", err)
	}
	if assets != nil {
		// Install failures are not fatal: Fetch falls back to the network.
		installCtx, cancel := context.WithTimeout(ctx, 1*time.Minute)
		if err := assets.Install(installCtx); err != nil {
			log.Printf("WARN: Asset cache install failed: %v", err)
		} else if err := assets.Activate(installCtx); err != nil {
			log.Printf("WARN: Asset cache activation failed: %v", err)
		}
		cancel()
		log.Printf("INFO: Serving web app through asset cache %s", assets.CacheName())
		assetHandler = assets.Handler()
	} else {
		log.Println("INFO: No asset origin configured, serving the API only.")
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, ctl, svcs.Routines, svcs.History, assetHandler)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
