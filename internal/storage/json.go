package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/romangod6/recipe-crawler/internal/utils"
)

// JSONFile is the batch output: one pretty-printed JSON array of recipes.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Path() string {
	return f.path
}

// WriteRecipes replaces the file with recipes as a single JSON array with
// two-space indentation. Non-ASCII and HTML characters are written as-is.
func (f *JSONFile) WriteRecipes(recipes []*models.Recipe) error {
	if recipes == nil {
		recipes = []*models.Recipe{}
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", utils.ErrStorage, err)
		}
	}

	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", utils.ErrStorage, f.path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recipes); err != nil {
		return fmt.Errorf("%w: encoding recipes: %v", utils.ErrStorage, err)
	}

	return file.Close()
}

// LoadRecipes reads the file back. A missing file is an empty collection.
func (f *JSONFile) LoadRecipes(ctx context.Context) ([]*models.Recipe, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*models.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", utils.ErrStorage, f.path, err)
	}

	var recipes []*models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", utils.ErrStorage, f.path, err)
	}

	for _, r := range recipes {
		r.Normalize()
	}
	if recipes == nil {
		recipes = []*models.Recipe{}
	}
	return recipes, nil
}
