package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/sirupsen/logrus"
)

// LocationFetcher returns the <loc> entries of an XML sitemap document.
type LocationFetcher interface {
	FetchLocations(ctx context.Context, sitemapURL string) ([]string, error)
}

type SitemapFetcher struct {
	userAgent string
	timeout   time.Duration
	log       *logrus.Entry
}

func NewSitemapFetcher(userAgent string, timeout time.Duration, logger *utils.CrawlerLogger) *SitemapFetcher {
	return &SitemapFetcher{
		userAgent: userAgent,
		timeout:   timeout,
		log:       logger.Entry("sitemap"),
	}
}

func (f *SitemapFetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(0),
	)
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}
	return c
}

// FetchLocations downloads sitemapURL and returns the trimmed text of every
// loc element in document order. Non-2xx responses are fetch failures.
func (f *SitemapFetcher) FetchLocations(ctx context.Context, sitemapURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locs := make([]string, 0)
	c := f.newCollector()

	c.OnXML("//loc", func(e *colly.XMLElement) {
		locs = append(locs, strings.TrimSpace(e.Text))
	})

	c.OnError(func(r *colly.Response, err error) {
		f.log.WithFields(logrus.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		}).Errorf("sitemap request failed: %v", err)
	})

	if err := c.Visit(sitemapURL); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", utils.ErrFetchFailure, sitemapURL, err)
	}

	f.log.WithField("url", sitemapURL).Debugf("found %d locations", len(locs))
	return locs, nil
}

// SitemapResolver selects recipe sitemaps out of a sitemap index.
type SitemapResolver struct {
	fetcher LocationFetcher
	marker  string
}

func NewSitemapResolver(fetcher LocationFetcher, marker string) *SitemapResolver {
	return &SitemapResolver{fetcher: fetcher, marker: marker}
}

// ResolveChildSitemaps returns every child sitemap location containing the
// configured marker, in index order. Duplicates are kept.
func (r *SitemapResolver) ResolveChildSitemaps(ctx context.Context, indexURL string) ([]string, error) {
	locs, err := r.fetcher.FetchLocations(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	children := make([]string, 0, len(locs))
	for _, loc := range locs {
		if strings.Contains(loc, r.marker) {
			children = append(children, loc)
		}
	}
	return children, nil
}

// ListSitemaps returns every location in the index without filtering.
func (r *SitemapResolver) ListSitemaps(ctx context.Context, indexURL string) ([]string, error) {
	return r.fetcher.FetchLocations(ctx, indexURL)
}
