package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Driver string
		URL    string
	}
	Server struct {
		Port int
	}
	Log struct {
		Level string
		Dir   string
	}
	Crawler struct {
		SitemapIndexURL      string
		RobotsURL            string
		UserAgent            string
		Limit                int
		MaxChildSitemaps     int
		SitemapMarker        string
		RecipePathMarker     string
		ExcludedSuffixes     []string
		OutputPath           string
		RobotsOutputPath     string
		Renderer             string
		ReadySelector        string
		RenderTimeout        string
		FetchTimeout         string
		Headless             bool
		Workers              int
		AbortOnRenderFailure bool
	}
	Selectors Selectors
}

// Selectors are the CSS queries the recipe parser runs against a rendered page.
type Selectors struct {
	Title        string
	Description  string
	Images       []string
	Ingredients  string
	Instructions string
	StepClass    string
	Rating       string
	PrepTime     string
	CookTime     string
	TotalTime    string
	Nutrition    string
	Categories   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "logs")

	v.SetDefault("crawler.sitemapindexurl", "https://www.tasteofhome.com/sitemap_index.xml")
	v.SetDefault("crawler.robotsurl", "https://www.tasteofhome.com/robots.txt")
	v.SetDefault("crawler.useragent", "Mozilla/5.0")
	v.SetDefault("crawler.limit", 100)
	v.SetDefault("crawler.maxchildsitemaps", 3)
	v.SetDefault("crawler.sitemapmarker", "recipe-sitemap")
	v.SetDefault("crawler.recipepathmarker", "/recipes/")
	v.SetDefault("crawler.excludedsuffixes", []string{".jpg", ".png", ".jpeg"})
	v.SetDefault("crawler.outputpath", "data/recipes.json")
	v.SetDefault("crawler.robotsoutputpath", "data/robots_summary.json")
	v.SetDefault("crawler.renderer", "chrome")
	v.SetDefault("crawler.readyselector", "h1")
	v.SetDefault("crawler.rendertimeout", "30s")
	v.SetDefault("crawler.fetchtimeout", "60s")
	v.SetDefault("crawler.headless", true)
	v.SetDefault("crawler.workers", 1)
	v.SetDefault("crawler.abortonrenderfailure", false)

	d := DefaultSelectors()
	v.SetDefault("selectors.title", d.Title)
	v.SetDefault("selectors.description", d.Description)
	v.SetDefault("selectors.images", d.Images)
	v.SetDefault("selectors.ingredients", d.Ingredients)
	v.SetDefault("selectors.instructions", d.Instructions)
	v.SetDefault("selectors.stepclass", d.StepClass)
	v.SetDefault("selectors.rating", d.Rating)
	v.SetDefault("selectors.preptime", d.PrepTime)
	v.SetDefault("selectors.cooktime", d.CookTime)
	v.SetDefault("selectors.totaltime", d.TotalTime)
	v.SetDefault("selectors.nutrition", d.Nutrition)
	v.SetDefault("selectors.categories", d.Categories)
}

// DefaultSelectors matches the markup of the default recipe site.
func DefaultSelectors() Selectors {
	return Selectors{
		Title:        "h1",
		Description:  "meta[name=description]",
		Images:       []string{"div.recipe-image img", "img.primary-image", "img"},
		Ingredients:  "ul.recipe-ingredients__list li",
		Instructions: "li.recipe-directions__item",
		StepClass:    "step",
		Rating:       "span.review-average",
		PrepTime:     "span.prep-time",
		CookTime:     "span.cook-time",
		TotalTime:    "span.total-time",
		Nutrition:    "div.nutrition-section li",
		Categories:   "a.category-link",
	}
}

// LoadConfig reads config.yaml from the working directory or ./config.
// A missing file is fine; defaults and RECIPES_* environment variables apply.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".", "./config")
}

func LoadConfigFrom(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("recipes")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) GetRenderTimeout() time.Duration {
	return parseDuration(c.Crawler.RenderTimeout, 30*time.Second)
}

func (c *Config) GetFetchTimeout() time.Duration {
	return parseDuration(c.Crawler.FetchTimeout, 60*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}
