package crawler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/romangod6/recipe-crawler/internal/storage"
	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type BatchConfig struct {
	IndexURL             string
	Workers              int
	AbortOnRenderFailure bool
}

// BatchRunner collects recipe URLs, extracts each page and writes the
// records that have ingredients to a JSON file.
type BatchRunner struct {
	collector *URLCollector
	extractor RecipeExtractor
	archive   storage.Store
	config    BatchConfig
	logger    *utils.CrawlerLogger
	log       *logrus.Entry
}

func NewBatchRunner(collector *URLCollector, extractor RecipeExtractor, archive storage.Store, config BatchConfig, logger *utils.CrawlerLogger) *BatchRunner {
	return &BatchRunner{
		collector: collector,
		extractor: extractor,
		archive:   archive,
		config:    config,
		logger:    logger,
		log:       logger.Entry("batch"),
	}
}

// RunBatch returns the number of recipes written to outputPath. Nothing is
// written when collection fails, when the context is canceled, or when a
// render failure occurs with AbortOnRenderFailure set.
func (b *BatchRunner) RunBatch(ctx context.Context, limit int, outputPath string) (int, error) {
	run := models.NewBatchRun(b.config.IndexURL, outputPath)

	urls, err := b.collector.CollectRecipeURLs(ctx, b.config.IndexURL, limit)
	if err != nil {
		return 0, err
	}
	run.Candidates = len(urls)
	b.log.WithField("run_id", run.ID).Infof("collected %d recipe urls", len(urls))

	results, failed, err := b.extractAll(ctx, urls, limit)
	if err != nil {
		return 0, err
	}
	run.Failed = failed

	recipes := make([]*models.Recipe, 0, len(results))
	for _, recipe := range results {
		if recipe == nil {
			continue
		}
		if !recipe.HasIngredients() {
			run.Discarded++
			b.log.WithField("url", recipe.URL).Debug("discarding page without ingredients")
			continue
		}
		recipes = append(recipes, recipe)
	}

	if err := storage.NewJSONFile(outputPath).WriteRecipes(recipes); err != nil {
		return 0, err
	}
	run.Written = len(recipes)
	run.Finish()
	b.logger.LogInfo("Saved %d recipes to %s", run.Written, outputPath)

	b.log.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"candidates": run.Candidates,
		"written":    run.Written,
		"discarded":  run.Discarded,
		"failed":     run.Failed,
		"duration":   run.Duration().String(),
	}).Info("batch complete")

	if b.archive != nil {
		if err := b.archive.SaveRun(ctx, run, recipes); err != nil {
			return run.Written, fmt.Errorf("%w: archiving run %s: %v", utils.ErrStorage, run.ID, err)
		}
	}

	return run.Written, nil
}

// extractAll returns one slot per URL in discovery order; failed pages leave
// a nil slot.
func (b *BatchRunner) extractAll(ctx context.Context, urls []string, limit int) ([]*models.Recipe, int, error) {
	results := make([]*models.Recipe, len(urls))
	var failed atomic.Int64

	extractOne := func(ctx context.Context, i int, pageURL string) error {
		b.logger.LogInfo("Scraping [%d/%d]: %s", i+1, limit, pageURL)

		recipe, err := b.extractor.Extract(ctx, pageURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if b.config.AbortOnRenderFailure {
				return err
			}
			b.log.WithFields(logrus.Fields{
				"url":      pageURL,
				"category": utils.CategorizeError(err),
			}).Errorf("skipping page: %v", err)
			failed.Add(1)
			return nil
		}

		results[i] = recipe
		return nil
	}

	if b.config.Workers <= 1 {
		for i, pageURL := range urls {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			if err := extractOne(ctx, i, pageURL); err != nil {
				return nil, 0, err
			}
		}
		return results, int(failed.Load()), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.Workers)
	for i, pageURL := range urls {
		i, pageURL := i, pageURL
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return extractOne(gctx, i, pageURL)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return results, int(failed.Load()), nil
}
