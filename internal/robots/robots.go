// Package robots fetches a site's robots.txt and summarizes its directives.
package robots

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// Fetch downloads robots.txt. Non-2xx responses are fetch failures.
func Fetch(ctx context.Context, robotsURL, userAgent string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}

	var body string
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	if err := c.Visit(robotsURL); err != nil {
		return "", fmt.Errorf("%w: %s: %v", utils.ErrFetchFailure, robotsURL, err)
	}
	return body, nil
}

// ParseSummary collects Allow, Disallow, Sitemap and Crawl-delay lines.
// Allow and Disallow match case-sensitively, Sitemap and Crawl-delay do not.
// The value is the text after the first colon, except for Allow, Disallow
// and Crawl-delay where a second colon ends it. The last Crawl-delay wins.
func ParseSummary(body string) *models.RobotsSummary {
	summary := models.NewRobotsSummary()

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, ":") {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(line, "Disallow"):
			summary.Disallowed = append(summary.Disallowed, secondField(line))
		case strings.HasPrefix(line, "Allow"):
			summary.Allowed = append(summary.Allowed, secondField(line))
		case strings.HasPrefix(lower, "sitemap"):
			_, value, _ := strings.Cut(line, ":")
			summary.Sitemaps = append(summary.Sitemaps, strings.TrimSpace(value))
		case strings.HasPrefix(lower, "crawl-delay"):
			delay := secondField(line)
			summary.CrawlDelay = &delay
		}
	}

	return summary
}

// secondField returns the trimmed text between the first and second colon.
func secondField(line string) string {
	return strings.TrimSpace(strings.Split(line, ":")[1])
}

// Save writes the summary as indented JSON, creating parent directories.
func Save(path string, summary *models.RobotsSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", utils.ErrStorage, err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", utils.ErrStorage, path, err)
	}
	return nil
}

// ErrNoSummary is returned by Load when no summary file exists.
var ErrNoSummary = errors.New("robots summary not found")

func Load(path string) (*models.RobotsSummary, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSummary
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", utils.ErrStorage, path, err)
	}

	summary := models.NewRobotsSummary()
	if err := json.Unmarshal(data, summary); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", utils.ErrStorage, path, err)
	}
	return summary, nil
}
