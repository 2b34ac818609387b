// ABOUTME: Main entry point for the output preview server
// ABOUTME: Serves written feeds and the index page read-only over HTTP

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"releaseradar/infrastructure/logger/structured"
	"releaseradar/infrastructure/preview"
	"releaseradar/pkg/config"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.NewStructuredLogger(os.Getenv("LOG_LEVEL"))

	// The preview server only ever reads what a pipeline run wrote
	if _, err := os.Stat(cfg.Paths.OutputDir); err != nil {
		log.Fatalf("Output directory %q is not readable, run releaseradar first: %v", cfg.Paths.OutputDir, err)
	}

	// Assemble the handler chain: CORS outermost, then request logging,
	// then rate limiting around the file server
	limiter := preview.NewLimiter(100, time.Minute)
	defer limiter.Close()

	files := http.FileServer(http.Dir(cfg.Paths.OutputDir))
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	}).Handler(preview.RequestLogging(logger)(preview.RateLimit(limiter)(files)))

	srv := &http.Server{
		Addr:         ":" + cfg.Preview.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("preview server starting", map[string]interface{}{
			"address": srv.Addr,
			"dir":     cfg.Paths.OutputDir,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Preview server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down preview server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Preview server forced to shut down: %v", err)
	}

	logger.Info("preview server stopped", nil)
}
