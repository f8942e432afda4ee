package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordquiz/internal/config"
	"wordquiz/internal/handlers"
	"wordquiz/internal/repository"
	"wordquiz/internal/security"
	"wordquiz/internal/service"
	"wordquiz/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open progress storage (memory, file, sqlite, postgres, mysql, redis, mongo)
	repo, closeStorage, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open progress storage: %v", err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Printf("Warning: failed to close progress storage: %v", err)
		}
	}()

	// Initialize services
	clock := utils.NewSystemClock(cfg.Location)
	progressService := service.NewProgressService(repo, clock)
	gameService := service.NewGameService(progressService)
	feedbackService := service.NewFeedbackService(progressService)
	backupService := service.NewBackupService(progressService, cfg.ProfileID)

	// Warm the cache so a broken backend shows up at startup
	if _, err := progressService.GetProgress(context.Background()); err != nil {
		log.Printf("Warning: failed to load progress: %v", err)
	}

	if cfg.Debug {
		log.Printf("[DEBUG] Debug mode enabled; reset and import endpoints are active")
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	middleware := handlers.NewMiddleware(limiter)
	progressHandler := handlers.NewProgressHandler(progressService, backupService, cfg.Debug)
	gameHandler := handlers.NewGameHandler(gameService, feedbackService)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.Routes(progressHandler, gameHandler, middleware),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s (storage: %s, time zone: %s)", addr, cfg.StorageBackend, cfg.Location)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: server shutdown did not complete: %v", err)
	}
}
