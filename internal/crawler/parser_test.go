package crawler

import (
	"testing"

	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullRecipePage = `<!DOCTYPE html>
<html>
<head>
  <meta name="description" content="Creamy baked macaroni with three cheeses.">
  <script>var tracking = "<li class='step'>ignored</li>";</script>
</head>
<body>
  <h1>
    Three-Cheese
    Macaroni
  </h1>
  <div class="recipe-image"><img src="https://cdn.example.com/mac.jpg"></div>
  <img class="primary-image" src="https://cdn.example.com/other.jpg">
  <span class="review-average">4.8</span>
  <span class="prep-time">15 min</span>
  <span class="cook-time">30 min</span>
  <span class="total-time">45 min</span>
  <ul class="recipe-ingredients__list">
    <li>2 cups   <b>elbow</b> macaroni</li>
    <li>   </li>
    <li>1 cup cheddar</li>
  </ul>
  <ol>
    <li class="recipe-directions__item">Boil the macaroni.</li>
    <li class="recipe-directions__item"><!-- note -->Stir in the cheese.</li>
  </ol>
  <div class="nutrition-section">
    <ul>
      <li>Calories: 420</li>
      <li>Fat : 18g</li>
      <li>Ratio: 1:2</li>
      <li>no colon here</li>
      <li>Calories: 430</li>
    </ul>
  </div>
  <a class="category-link" href="/c/pasta">Pasta</a>
  <a class="category-link" href="/c/dinner">Dinner</a>
  <a class="category-link" href="/c/pasta">Pasta</a>
</body>
</html>`

func TestParseRecipeFullPage(t *testing.T) {
	recipe, err := ParseRecipe("https://example.com/recipes/mac/", fullRecipePage, config.DefaultSelectors())
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/recipes/mac/", recipe.URL)
	assert.Equal(t, "Three-Cheese Macaroni", recipe.Title)
	assert.Equal(t, "Creamy baked macaroni with three cheeses.", recipe.Description)
	assert.Equal(t, "https://cdn.example.com/mac.jpg", recipe.ImageURL)
	assert.Equal(t, []string{"2 cups elbow macaroni", "1 cup cheddar"}, recipe.Ingredients)
	assert.Equal(t, []string{"Boil the macaroni.", "Stir in the cheese."}, recipe.Instructions)
	assert.Equal(t, "4.8", recipe.Rating)
	assert.Equal(t, "15 min", recipe.PrepTime)
	assert.Equal(t, "30 min", recipe.CookTime)
	assert.Equal(t, "45 min", recipe.TotalTime)
	assert.Equal(t, map[string]string{"Calories": "430", "Fat": "18g", "Ratio": "1:2"}, recipe.Nutrition)
	assert.Equal(t, []string{"Pasta", "Dinner", "Pasta"}, recipe.Categories)
	assert.Equal(t, []string{"macaroni", "creamy", "baked", "three", "cheeses", "boil", "stir", "cheese"}, recipe.Keywords)
}

func TestParseRecipeMissingFields(t *testing.T) {
	recipe, err := ParseRecipe("https://example.com/recipes/empty/", "<html><body><p>Nothing here</p></body></html>", config.DefaultSelectors())
	require.NoError(t, err)

	assert.Equal(t, models.NotAvailable, recipe.Title)
	assert.Equal(t, models.NotAvailable, recipe.Description)
	assert.Equal(t, models.NotAvailable, recipe.ImageURL)
	assert.Equal(t, models.NotAvailable, recipe.Rating)
	assert.Equal(t, models.NotAvailable, recipe.PrepTime)
	assert.Equal(t, models.NotAvailable, recipe.CookTime)
	assert.Equal(t, models.NotAvailable, recipe.TotalTime)
	assert.Empty(t, recipe.Ingredients)
	assert.NotNil(t, recipe.Ingredients)
	assert.Empty(t, recipe.Instructions)
	assert.Empty(t, recipe.Nutrition)
	assert.NotNil(t, recipe.Nutrition)
	assert.Empty(t, recipe.Categories)
	assert.Empty(t, recipe.Keywords)
	assert.False(t, recipe.HasIngredients())
}

func TestParseRecipeBlankTitle(t *testing.T) {
	recipe, err := ParseRecipe("u", "<html><body><h1>   </h1></body></html>", config.DefaultSelectors())
	require.NoError(t, err)
	assert.Equal(t, models.NotAvailable, recipe.Title)
}

func TestParseRecipeTrimsDescription(t *testing.T) {
	page := `<html><head><meta name="description" content="
	  Quick weeknight soup.  "></head><body></body></html>`

	recipe, err := ParseRecipe("u", page, config.DefaultSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Quick weeknight soup.", recipe.Description)
}

func TestParseRecipeImageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "recipe image container",
			body: `<img src="/any.jpg"><img class="primary-image" src="/primary.jpg"><div class="recipe-image"><img src="/hero.jpg"></div>`,
			want: "/hero.jpg",
		},
		{
			name: "primary image class",
			body: `<img src="/any.jpg"><img class="primary-image" src="/primary.jpg">`,
			want: "/primary.jpg",
		},
		{
			name: "first image anywhere",
			body: `<p>intro</p><img src="/first.jpg"><img src="/second.jpg">`,
			want: "/first.jpg",
		},
		{
			name: "container image without src",
			body: `<div class="recipe-image"><img data-src="/lazy.jpg"></div><img class="primary-image" src="/primary.jpg">`,
			want: models.NotAvailable,
		},
		{
			name: "first image without src",
			body: `<img alt="x"><img src="/second.jpg">`,
			want: models.NotAvailable,
		},
		{
			name: "no usable image",
			body: `<img alt="missing">`,
			want: models.NotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe, err := ParseRecipe("u", "<html><body>"+tt.body+"</body></html>", config.DefaultSelectors())
			require.NoError(t, err)
			assert.Equal(t, tt.want, recipe.ImageURL)
		})
	}
}

func TestParseRecipeInstructionFallback(t *testing.T) {
	page := `<html><body>
<ol>
  <li class="step">Preheat oven.</li>
  <li class="recipe-step">Not a step token.</li>
  <li class="big step">Bake.</li>
  <li>Serve.</li>
</ol>
</body></html>`

	recipe, err := ParseRecipe("u", page, config.DefaultSelectors())
	require.NoError(t, err)
	assert.Equal(t, []string{"Preheat oven.", "Bake."}, recipe.Instructions)
}

func TestParseRecipePrimaryInstructionsWin(t *testing.T) {
	page := `<html><body>
<li class="step">Fallback step.</li>
<li class="recipe-directions__item">Primary step.</li>
</body></html>`

	recipe, err := ParseRecipe("u", page, config.DefaultSelectors())
	require.NoError(t, err)
	assert.Equal(t, []string{"Primary step."}, recipe.Instructions)
}

func TestParseRecipeCustomSelectors(t *testing.T) {
	sel := config.DefaultSelectors()
	sel.Title = "h2.recipe-title"
	sel.Ingredients = "div.ingredients span"

	page := `<html><body><h1>Site Name</h1><h2 class="recipe-title">Soup</h2>
<div class="ingredients"><span>water</span><span>salt</span></div></body></html>`

	recipe, err := ParseRecipe("u", page, sel)
	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
	assert.Equal(t, []string{"water", "salt"}, recipe.Ingredients)
}

func TestParseNutritionItems(t *testing.T) {
	got := ParseNutritionItems([]string{
		"Calories: 250",
		"Sodium:300mg",
		"Time: 10:30",
		"Protein",
		" Sugar :  2g ",
		"Sodium: 310mg",
	})

	assert.Equal(t, map[string]string{
		"Calories": "250",
		"Sodium":   "310mg",
		"Time":     "10:30",
		"Sugar":    "2g",
	}, got)
}

func TestParseNutritionItemsLastWins(t *testing.T) {
	got := ParseNutritionItems([]string{"Calories: 200", "Fat: 10g", "Calories: 250"})
	assert.Equal(t, map[string]string{"Calories": "250", "Fat": "10g"}, got)
}
