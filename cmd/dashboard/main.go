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

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/api"
	"github.com/romangod6/recipe-crawler/internal/storage"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewCrawlerLogger("dashboard", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	// Recipes come from the archive when one is configured, else the batch output file
	var reader storage.RecipeReader = storage.NewJSONFile(cfg.Crawler.OutputPath)
	archive, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to open archive: %v", err)
	}
	if archive != nil {
		defer archive.Close()
		if err := archive.Initialize(context.Background()); err != nil {
			logger.Fatal("Failed to initialize archive: %v", err)
		}
		reader = archive
	}

	handler := api.NewHandler(reader, archive, cfg.Crawler.RobotsOutputPath, logger)
	server := api.NewServer(cfg.Server.Port, handler)

	// Start the API server
	go func() {
		logger.LogInfo("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start API server: %v", err)
		}
	}()

	waitForShutdown(server, logger)
}

func waitForShutdown(server *api.Server, logger *utils.CrawlerLogger) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.LogInfo("Shutting down...")

	// Graceful server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("Error shutting down server: %v", err)
	}
	logger.LogInfo("Server shut down gracefully")
}
