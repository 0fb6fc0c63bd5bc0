package models

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipeSerializesEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewRecipe("https://example.com/recipes/a/"))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "N/A", raw["title"])
	assert.Equal(t, "N/A", raw["image_url"])
	assert.Equal(t, []interface{}{}, raw["ingredients"])
	assert.Equal(t, []interface{}{}, raw["keywords"])
	assert.Equal(t, map[string]interface{}{}, raw["nutrition"])
}

func TestRecipeNormalize(t *testing.T) {
	r := &Recipe{URL: "u"}
	r.Normalize()

	assert.NotNil(t, r.Ingredients)
	assert.NotNil(t, r.Instructions)
	assert.NotNil(t, r.Nutrition)
	assert.NotNil(t, r.Categories)
	assert.NotNil(t, r.Keywords)
	assert.False(t, r.HasIngredients())

	r.Ingredients = append(r.Ingredients, "1 egg")
	assert.True(t, r.HasIngredients())
}

func TestRobotsSummaryCrawlDelayNull(t *testing.T) {
	data, err := json.Marshal(NewRobotsSummary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"Allowed":[],"Disallowed":[],"Sitemaps":[],"Crawl-Delay":null}`, string(data))
}

func TestSitemapLocations(t *testing.T) {
	index := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/post-sitemap.xml</loc></sitemap>
  <sitemap><loc>https://example.com/recipe-sitemap1.xml</loc><lastmod>2024-01-01</lastmod></sitemap>
</sitemapindex>`

	var si SitemapIndex
	require.NoError(t, xml.Unmarshal([]byte(index), &si))
	assert.Equal(t, []string{
		"https://example.com/post-sitemap.xml",
		"https://example.com/recipe-sitemap1.xml",
	}, si.Locations())

	set := `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/recipes/a/</loc></url>
</urlset>`
	var sm Sitemap
	require.NoError(t, xml.Unmarshal([]byte(set), &sm))
	assert.Equal(t, []string{"https://example.com/recipes/a/"}, sm.Locations())
}

func TestBatchRunDuration(t *testing.T) {
	run := NewBatchRun("https://example.com/sitemap_index.xml", "data/recipes.json")
	assert.NotEqual(t, [16]byte{}, [16]byte(run.ID))
	run.Finish()
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
	assert.GreaterOrEqual(t, run.Duration().Nanoseconds(), int64(0))
}
