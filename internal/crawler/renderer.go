package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/sirupsen/logrus"
)

// Renderer loads a page and returns its HTML after client-side scripts ran.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
}

type ChromeConfig struct {
	UserAgent     string
	Headless      bool
	ReadySelector string
	Timeout       time.Duration
}

// ChromeRenderer drives a headless browser through chromedp. Every Render
// call starts its own browser and tears it down before returning.
type ChromeRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	config      ChromeConfig
	log         *logrus.Entry
}

func NewChromeRenderer(config ChromeConfig, logger *utils.CrawlerLogger) *ChromeRenderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.UserAgent(config.UserAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	if config.ReadySelector == "" {
		config.ReadySelector = "h1"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &ChromeRenderer{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		config:      config,
		log:         logger.Entry("renderer"),
	}
}

func (r *ChromeRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	// Propagate caller cancellation into the browser context.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, r.config.Timeout)
	defer cancelTimeout()

	var htmlContent string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(pageURL),
		// Wait for the readiness selector instead of a fixed settle delay
		chromedp.WaitReady(r.config.ReadySelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", utils.ErrRenderFailure, pageURL, ctxErr)
		}
		return "", fmt.Errorf("%w: %s: %v", utils.ErrRenderFailure, pageURL, err)
	}

	r.log.WithField("url", pageURL).Debugf("rendered %d bytes", len(htmlContent))
	return htmlContent, nil
}

// Close shuts down the browser allocator.
func (r *ChromeRenderer) Close() {
	r.allocCancel()
}

// HTTPRenderer fetches pages without executing scripts. It serves
// server-rendered sites and test fixtures.
type HTTPRenderer struct {
	userAgent string
	timeout   time.Duration
	log       *logrus.Entry
}

func NewHTTPRenderer(userAgent string, timeout time.Duration, logger *utils.CrawlerLogger) *HTTPRenderer {
	return &HTTPRenderer{
		userAgent: userAgent,
		timeout:   timeout,
		log:       logger.Entry("renderer"),
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", utils.ErrRenderFailure, pageURL, err)
	}

	c := colly.NewCollector(
		colly.UserAgent(r.userAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(0),
	)
	if r.timeout > 0 {
		c.SetRequestTimeout(r.timeout)
	}

	var body []byte
	c.OnResponse(func(resp *colly.Response) {
		body = resp.Body
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("%w: %s: %v", utils.ErrRenderFailure, pageURL, err)
	}

	r.log.WithField("url", pageURL).Debugf("fetched %d bytes", len(body))
	return string(body), nil
}
