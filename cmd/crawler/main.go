package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/crawler"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewCrawlerLogger("batch", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go waitForSignal(cancel, logger)

	pipeline, err := crawler.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build pipeline: %v", err)
	}
	defer pipeline.Close()

	logger.LogInfo("Starting batch: index=%s limit=%d renderer=%s workers=%d",
		cfg.Crawler.SitemapIndexURL, cfg.Crawler.Limit, cfg.Crawler.Renderer, cfg.Crawler.Workers)

	n, err := pipeline.Batch.RunBatch(ctx, cfg.Crawler.Limit, cfg.Crawler.OutputPath)
	if err != nil {
		pipeline.Close()
		logger.Fatal("Batch failed [%s]: %v", utils.CategorizeError(err), err)
	}

	logger.LogInfo("Batch finished with %d recipes", n)
}

func waitForSignal(cancel context.CancelFunc, logger *utils.CrawlerLogger) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.LogWarn("Interrupted, stopping batch without writing output")
	cancel()
}
