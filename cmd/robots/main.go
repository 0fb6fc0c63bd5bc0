package main

import (
	"context"
	"fmt"
	"log"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/robots"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// Fetches robots.txt, prints a summary and saves it for the dashboard.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewCrawlerLogger("robots", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	body, err := robots.Fetch(context.Background(), cfg.Crawler.RobotsURL, cfg.Crawler.UserAgent, cfg.GetFetchTimeout())
	if err != nil {
		logger.Fatal("Failed to fetch robots.txt: %v", err)
	}

	summary := robots.ParseSummary(body)
	if err := robots.Save(cfg.Crawler.RobotsOutputPath, summary); err != nil {
		logger.Fatal("Failed to save robots summary: %v", err)
	}

	fmt.Printf("Allowed paths:    %d\n", len(summary.Allowed))
	fmt.Printf("Disallowed paths: %d\n", len(summary.Disallowed))
	for _, s := range summary.Sitemaps {
		fmt.Printf("Sitemap: %s\n", s)
	}
	if summary.CrawlDelay != nil {
		fmt.Printf("Crawl-Delay: %s\n", *summary.CrawlDelay)
	} else {
		fmt.Println("Crawl-Delay: not set")
	}
	logger.LogInfo("Saved robots summary to %s", cfg.Crawler.RobotsOutputPath)
}
