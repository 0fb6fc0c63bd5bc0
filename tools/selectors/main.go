package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/crawler"
	"github.com/romangod6/recipe-crawler/internal/utils"
	"golang.org/x/net/html"
)

const samplesToAnalyze = 3

// Renders a few recipe pages and reports how the configured selectors match,
// along with recipe-related class names that could serve as replacements.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := utils.NewCrawlerLogger("selectors", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Close()

	ctx := context.Background()
	pipeline, err := crawler.NewPipeline(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Error building pipeline: %v", err)
	}
	defer pipeline.Close()

	urls, err := pipeline.Collector.CollectRecipeURLs(ctx, cfg.Crawler.SitemapIndexURL, samplesToAnalyze)
	if err != nil {
		log.Fatalf("Error collecting recipe URLs: %v", err)
	}
	fmt.Printf("Sampling %d recipe pages\n", len(urls))

	for i, pageURL := range urls {
		fmt.Printf("\n=== Analyzing URL %d/%d: %s ===\n", i+1, len(urls), pageURL)

		content, err := pipeline.Renderer.Render(ctx, pageURL)
		if err != nil {
			log.Printf("Error rendering page: %v", err)
			continue
		}

		root, err := html.Parse(strings.NewReader(content))
		if err != nil {
			log.Printf("Error parsing page: %v", err)
			continue
		}

		fmt.Println("\n--- Configured Selectors ---")
		analyzeSelectors(goquery.NewDocumentFromNode(root), cfg.Selectors)

		fmt.Println("\n--- Recipe Class Names ---")
		analyzeRecipeClasses(root)

		fmt.Println("\n--- Metadata ---")
		analyzeMetadata(root)
	}
}

func analyzeSelectors(doc *goquery.Document, sel config.Selectors) {
	checks := []struct {
		field    string
		selector string
	}{
		{"title", sel.Title},
		{"description", sel.Description},
		{"ingredients", sel.Ingredients},
		{"instructions", sel.Instructions},
		{"rating", sel.Rating},
		{"prep_time", sel.PrepTime},
		{"cook_time", sel.CookTime},
		{"total_time", sel.TotalTime},
		{"nutrition", sel.Nutrition},
		{"categories", sel.Categories},
	}
	for _, img := range sel.Images {
		checks = append(checks, struct {
			field    string
			selector string
		}{"image", img})
	}

	for _, check := range checks {
		matches := doc.Find(check.selector)
		sample := strings.Join(strings.Fields(matches.First().Text()), " ")
		if len(sample) > 60 {
			sample = sample[:60] + "..."
		}
		fmt.Printf("%-13s %-35s %3d match(es)  %s\n", check.field, check.selector, matches.Length(), sample)
	}
}

// analyzeRecipeClasses counts elements whose class mentions a recipe
// concept, so broken selectors can be replaced.
func analyzeRecipeClasses(n *html.Node) {
	hints := []string{"recipe", "ingredient", "direction", "step", "nutrition", "rating", "time"}
	counts := make(map[string]int)

	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, class := range strings.Fields(getAttr(n, "class")) {
				lower := strings.ToLower(class)
				for _, hint := range hints {
					if strings.Contains(lower, hint) {
						counts[n.Data+"."+class]++
						break
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-50s %d\n", k, counts[k])
	}
}

func analyzeMetadata(n *html.Node) {
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			name := getAttr(n, "name")
			if name == "" {
				name = getAttr(n, "property")
			}
			content := getAttr(n, "content")
			if name != "" && content != "" {
				fmt.Printf("  Found metadata: %s = '%s'\n", name, content)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
