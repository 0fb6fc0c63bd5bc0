package main

import (
	"context"
	"fmt"
	"log"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/crawler"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// Lists every sitemap in the configured index and marks the recipe sitemaps.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewCrawlerLogger("sitemaps", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	fetcher := crawler.NewSitemapFetcher(cfg.Crawler.UserAgent, cfg.GetFetchTimeout(), logger)
	resolver := crawler.NewSitemapResolver(fetcher, cfg.Crawler.SitemapMarker)
	ctx := context.Background()

	all, err := resolver.ListSitemaps(ctx, cfg.Crawler.SitemapIndexURL)
	if err != nil {
		logger.Fatal("Failed to read sitemap index: %v", err)
	}

	children, err := resolver.ResolveChildSitemaps(ctx, cfg.Crawler.SitemapIndexURL)
	if err != nil {
		logger.Fatal("Failed to resolve recipe sitemaps: %v", err)
	}
	recipe := make(map[string]bool, len(children))
	for _, c := range children {
		recipe[c] = true
	}

	fmt.Printf("Total sitemaps found: %d (%d recipe sitemaps)\n\n", len(all), len(children))
	for i, loc := range all {
		marker := " "
		if recipe[loc] {
			marker = "*"
		}
		fmt.Printf("%s %3d. %s\n", marker, i+1, loc)
	}
}
