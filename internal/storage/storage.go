package storage

import (
	"context"
	"fmt"

	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// RecipeReader is the read side shared by the JSON output file and the
// database archives.
type RecipeReader interface {
	LoadRecipes(ctx context.Context) ([]*models.Recipe, error)
}

// Store archives batch runs and the recipes they produced.
type Store interface {
	RecipeReader

	Initialize(ctx context.Context) error
	Close() error

	// SaveRun upserts the run and replaces its recipes, keeping their order.
	SaveRun(ctx context.Context, run *models.BatchRun, recipes []*models.Recipe) error
	// LatestRun returns the most recently started run, or nil if none exist.
	LatestRun(ctx context.Context) (*models.BatchRun, error)
	ListRuns(ctx context.Context, limit int) ([]*models.BatchRun, error)
}

// Open connects to the archive named by driver. An empty driver or "none"
// means no archive and returns a nil Store.
func Open(driver, url string) (Store, error) {
	switch driver {
	case "", "none":
		return nil, nil
	case "sqlite", "sqlite3":
		return NewSQLiteStore(url)
	case "postgres", "postgresql":
		return NewPostgresStore(url)
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", utils.ErrConfig, driver)
	}
}
