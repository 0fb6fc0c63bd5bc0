package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Crawler.Limit)
	assert.Equal(t, 3, cfg.Crawler.MaxChildSitemaps)
	assert.Equal(t, "data/recipes.json", cfg.Crawler.OutputPath)
	assert.Equal(t, "recipe-sitemap", cfg.Crawler.SitemapMarker)
	assert.Equal(t, "/recipes/", cfg.Crawler.RecipePathMarker)
	assert.Equal(t, []string{".jpg", ".png", ".jpeg"}, cfg.Crawler.ExcludedSuffixes)
	assert.Equal(t, "chrome", cfg.Crawler.Renderer)
	assert.True(t, cfg.Crawler.Headless)
	assert.Equal(t, 1, cfg.Crawler.Workers)
	assert.False(t, cfg.Crawler.AbortOnRenderFailure)
	assert.Equal(t, DefaultSelectors(), cfg.Selectors)
	assert.Equal(t, 30*time.Second, cfg.GetRenderTimeout())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
crawler:
  limit: 5
  outputpath: out/r.json
  rendertimeout: 2s
  workers: 4
selectors:
  title: h2.headline
database:
  driver: sqlite
  url: archive.db
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Crawler.Limit)
	assert.Equal(t, "out/r.json", cfg.Crawler.OutputPath)
	assert.Equal(t, 2*time.Second, cfg.GetRenderTimeout())
	assert.Equal(t, 4, cfg.Crawler.Workers)
	assert.Equal(t, "h2.headline", cfg.Selectors.Title)
	assert.Equal(t, "ul.recipe-ingredients__list li", cfg.Selectors.Ingredients)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "archive.db", cfg.Database.URL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("RECIPES_CRAWLER_LIMIT", "7")
	t.Setenv("RECIPES_CRAWLER_SITEMAPINDEXURL", "http://localhost/index.xml")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Crawler.Limit)
	assert.Equal(t, "http://localhost/index.xml", cfg.Crawler.SitemapIndexURL)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("crawler: [unclosed"), 0644))

	_, err := LoadConfigFrom(dir)
	assert.Error(t, err)
}

func TestDurationFallback(t *testing.T) {
	cfg := &Config{}
	cfg.Crawler.RenderTimeout = "soon"
	cfg.Crawler.FetchTimeout = "-1s"

	assert.Equal(t, 30*time.Second, cfg.GetRenderTimeout())
	assert.Equal(t, 60*time.Second, cfg.GetFetchTimeout())
}
