package api

import (
	"sort"
	"strings"

	"github.com/romangod6/recipe-crawler/internal/models"
)

var measurementUnits = map[string]struct{}{
	"cups": {}, "cup": {}, "tablespoons": {}, "tablespoon": {}, "teaspoons": {},
	"teaspoon": {}, "ounces": {}, "ounce": {}, "pounds": {}, "pound": {},
}

type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ComplexityEntry struct {
	Title            string  `json:"title"`
	URL              string  `json:"url"`
	IngredientCount  int     `json:"ingredient_count"`
	InstructionCount int     `json:"instruction_count"`
	ComplexityScore  float64 `json:"complexity_score"`
}

type RecipeStats struct {
	TotalRecipes       int               `json:"total_recipes"`
	AvgIngredients     float64           `json:"avg_ingredients"`
	AvgInstructions    float64           `json:"avg_instructions"`
	TopIngredientWords []CountEntry      `json:"top_ingredient_words"`
	TopCategories      []CountEntry      `json:"top_categories"`
	TopKeywords        []CountEntry      `json:"top_keywords"`
	MostComplex        []ComplexityEntry `json:"most_complex"`
}

// ComputeStats summarizes a recipe collection for the dashboard.
func ComputeStats(recipes []*models.Recipe) RecipeStats {
	stats := RecipeStats{TotalRecipes: len(recipes)}

	ingredientWords := newCounter()
	categories := newCounter()
	keywords := newCounter()
	complexity := make([]ComplexityEntry, 0, len(recipes))

	var ingredientTotal, instructionTotal int
	for _, r := range recipes {
		ingredientTotal += len(r.Ingredients)
		instructionTotal += len(r.Instructions)

		for _, ing := range r.Ingredients {
			for _, word := range strings.Fields(strings.ToLower(ing)) {
				if len(word) <= 3 {
					continue
				}
				if _, unit := measurementUnits[word]; unit {
					continue
				}
				ingredientWords.add(word)
			}
		}
		for _, cat := range r.Categories {
			categories.add(cat)
		}
		for _, kw := range r.Keywords {
			keywords.add(kw)
		}

		complexity = append(complexity, ComplexityEntry{
			Title:            r.Title,
			URL:              r.URL,
			IngredientCount:  len(r.Ingredients),
			InstructionCount: len(r.Instructions),
			ComplexityScore:  float64(len(r.Ingredients)) + float64(len(r.Instructions))*0.5,
		})
	}

	if len(recipes) > 0 {
		stats.AvgIngredients = float64(ingredientTotal) / float64(len(recipes))
		stats.AvgInstructions = float64(instructionTotal) / float64(len(recipes))
	}

	stats.TopIngredientWords = ingredientWords.mostCommon(15)
	stats.TopCategories = categories.mostCommon(10)
	stats.TopKeywords = keywords.mostCommon(10)

	sort.SliceStable(complexity, func(i, j int) bool {
		return complexity[i].ComplexityScore > complexity[j].ComplexityScore
	})
	if len(complexity) > 5 {
		complexity = complexity[:5]
	}
	stats.MostComplex = complexity

	return stats
}

// counter tallies labels and remembers first-seen order for tie breaks.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if c.counts[label] == 0 {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *counter) mostCommon(n int) []CountEntry {
	entries := make([]CountEntry, 0, len(c.order))
	for _, label := range c.order {
		entries = append(entries, CountEntry{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
