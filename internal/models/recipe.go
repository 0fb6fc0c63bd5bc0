package models

// NewRecipe creates a recipe for pageURL with every scalar field set to
// NotAvailable and every collection empty but non-nil.
func NewRecipe(pageURL string) *Recipe {
	return &Recipe{
		URL:          pageURL,
		Title:        NotAvailable,
		Description:  NotAvailable,
		ImageURL:     NotAvailable,
		Ingredients:  []string{},
		Instructions: []string{},
		Rating:       NotAvailable,
		PrepTime:     NotAvailable,
		CookTime:     NotAvailable,
		TotalTime:    NotAvailable,
		Nutrition:    map[string]string{},
		Categories:   []string{},
		Keywords:     []string{},
	}
}

// HasIngredients reports whether the recipe passes the output quality gate.
func (r *Recipe) HasIngredients() bool {
	return len(r.Ingredients) > 0
}

// Normalize replaces nil collections with empty ones so the recipe
// serializes with [] and {} rather than null.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Nutrition == nil {
		r.Nutrition = map[string]string{}
	}
	if r.Categories == nil {
		r.Categories = []string{}
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
}
