package main

import (
	"context"
	"fmt"
	"log"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/crawler"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// Prints the recipe URLs a batch would visit, without rendering them.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewCrawlerLogger("collect", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	fetcher := crawler.NewSitemapFetcher(cfg.Crawler.UserAgent, cfg.GetFetchTimeout(), logger)
	collector := crawler.NewURLCollector(
		crawler.NewSitemapResolver(fetcher, cfg.Crawler.SitemapMarker),
		fetcher,
		crawler.CollectorConfig{
			MaxChildSitemaps: cfg.Crawler.MaxChildSitemaps,
			RecipePathMarker: cfg.Crawler.RecipePathMarker,
			ExcludedSuffixes: cfg.Crawler.ExcludedSuffixes,
		},
		logger,
	)

	urls, err := collector.CollectRecipeURLs(context.Background(), cfg.Crawler.SitemapIndexURL, cfg.Crawler.Limit)
	if err != nil {
		logger.Fatal("Failed to collect recipe URLs: %v", err)
	}

	fmt.Printf("Collected %d recipe URLs\n", len(urls))
	for _, u := range urls {
		fmt.Println(u)
	}
}
