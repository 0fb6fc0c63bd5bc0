package crawler

import (
	"context"
	"fmt"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/sirupsen/logrus"
)

// RecipeExtractor turns a recipe page URL into a record.
type RecipeExtractor interface {
	Extract(ctx context.Context, pageURL string) (*models.Recipe, error)
}

type Extractor struct {
	renderer  Renderer
	selectors config.Selectors
	log       *logrus.Entry
}

func NewExtractor(renderer Renderer, selectors config.Selectors, logger *utils.CrawlerLogger) *Extractor {
	return &Extractor{
		renderer:  renderer,
		selectors: selectors,
		log:       logger.Entry("extractor"),
	}
}

// Extract renders the page and parses it. Only render failures are
// returned; fields the page lacks are filled with placeholders.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*models.Recipe, error) {
	content, err := e.renderer.Render(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	recipe, err := ParseRecipe(pageURL, content, e.selectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", utils.ErrRenderFailure, pageURL, err)
	}

	e.log.WithFields(logrus.Fields{
		"url":          pageURL,
		"title":        recipe.Title,
		"ingredients":  len(recipe.Ingredients),
		"instructions": len(recipe.Instructions),
	}).Debug("extracted recipe")

	return recipe, nil
}
