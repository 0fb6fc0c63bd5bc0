package crawler

import (
	"context"
	"fmt"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/storage"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// Pipeline holds the crawl components built from configuration.
type Pipeline struct {
	Fetcher   *SitemapFetcher
	Resolver  *SitemapResolver
	Collector *URLCollector
	Renderer  Renderer
	Extractor *Extractor
	Batch     *BatchRunner
	Archive   storage.Store

	closers []func()
}

func NewPipeline(ctx context.Context, cfg *config.Config, logger *utils.CrawlerLogger) (*Pipeline, error) {
	p := &Pipeline{}

	fetchTimeout := cfg.GetFetchTimeout()
	p.Fetcher = NewSitemapFetcher(cfg.Crawler.UserAgent, fetchTimeout, logger)
	p.Resolver = NewSitemapResolver(p.Fetcher, cfg.Crawler.SitemapMarker)
	p.Collector = NewURLCollector(p.Resolver, p.Fetcher, CollectorConfig{
		MaxChildSitemaps: cfg.Crawler.MaxChildSitemaps,
		RecipePathMarker: cfg.Crawler.RecipePathMarker,
		ExcludedSuffixes: cfg.Crawler.ExcludedSuffixes,
	}, logger)

	switch cfg.Crawler.Renderer {
	case "", "chrome":
		chrome := NewChromeRenderer(ChromeConfig{
			UserAgent:     cfg.Crawler.UserAgent,
			Headless:      cfg.Crawler.Headless,
			ReadySelector: cfg.Crawler.ReadySelector,
			Timeout:       cfg.GetRenderTimeout(),
		}, logger)
		p.Renderer = chrome
		p.closers = append(p.closers, chrome.Close)
	case "http":
		p.Renderer = NewHTTPRenderer(cfg.Crawler.UserAgent, fetchTimeout, logger)
	default:
		return nil, fmt.Errorf("%w: unknown renderer %q", utils.ErrConfig, cfg.Crawler.Renderer)
	}

	archive, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if archive != nil {
		p.closers = append(p.closers, func() { archive.Close() })
		if err := archive.Initialize(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("%w: initializing archive: %v", utils.ErrStorage, err)
		}
		p.Archive = archive
	}

	p.Extractor = NewExtractor(p.Renderer, cfg.Selectors, logger)
	p.Batch = NewBatchRunner(p.Collector, p.Extractor, p.Archive, BatchConfig{
		IndexURL:             cfg.Crawler.SitemapIndexURL,
		Workers:              cfg.Crawler.Workers,
		AbortOnRenderFailure: cfg.Crawler.AbortOnRenderFailure,
	}, logger)

	return p, nil
}

// Close releases the browser allocator and the archive connection.
func (p *Pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
	p.closers = nil
}
