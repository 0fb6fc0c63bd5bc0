package crawler

import (
	"context"
	"fmt"
	"strings"

	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/sirupsen/logrus"
)

type CollectorConfig struct {
	MaxChildSitemaps int
	RecipePathMarker string
	ExcludedSuffixes []string
}

// URLCollector gathers candidate recipe page URLs from the recipe sitemaps.
type URLCollector struct {
	resolver *SitemapResolver
	fetcher  LocationFetcher
	config   CollectorConfig
	log      *logrus.Entry
}

func NewURLCollector(resolver *SitemapResolver, fetcher LocationFetcher, config CollectorConfig, logger *utils.CrawlerLogger) *URLCollector {
	return &URLCollector{
		resolver: resolver,
		fetcher:  fetcher,
		config:   config,
		log:      logger.Entry("collector"),
	}
}

// CollectRecipeURLs returns at most limit recipe URLs in discovery order.
// The limit is checked only between child sitemaps, so the accumulated list
// may overshoot before it is truncated.
func (uc *URLCollector) CollectRecipeURLs(ctx context.Context, indexURL string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", utils.ErrInvalidLimit, limit)
	}

	children, err := uc.resolver.ResolveChildSitemaps(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("resolving child sitemaps: %w", err)
	}
	if uc.config.MaxChildSitemaps >= 0 && len(children) > uc.config.MaxChildSitemaps {
		children = children[:uc.config.MaxChildSitemaps]
	}

	urls := make([]string, 0, limit)
	for _, child := range children {
		locs, err := uc.fetcher.FetchLocations(ctx, child)
		if err != nil {
			return nil, fmt.Errorf("fetching child sitemap: %w", err)
		}

		kept := 0
		for _, loc := range locs {
			if uc.isRecipeURL(loc) {
				urls = append(urls, loc)
				kept++
			}
		}
		uc.log.WithField("sitemap", child).Infof("kept %d of %d locations", kept, len(locs))

		if len(urls) >= limit {
			break
		}
	}

	if len(urls) > limit {
		urls = urls[:limit]
	}
	return urls, nil
}

func (uc *URLCollector) isRecipeURL(loc string) bool {
	if !strings.Contains(loc, uc.config.RecipePathMarker) {
		return false
	}
	for _, suffix := range uc.config.ExcludedSuffixes {
		if strings.HasSuffix(loc, suffix) {
			return false
		}
	}
	return true
}
