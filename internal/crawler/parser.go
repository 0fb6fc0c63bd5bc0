// internal/crawler/parser.go
package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/romangod6/recipe-crawler/config"
	"github.com/romangod6/recipe-crawler/internal/models"
	"golang.org/x/net/html"
)

// ParseRecipe extracts a recipe record from rendered page HTML. Missing
// fields fall back to models.NotAvailable or an empty collection; only an
// unreadable document is an error.
func ParseRecipe(pageURL, content string, sel config.Selectors) (*models.Recipe, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}
	stripNonContent(root)
	doc := goquery.NewDocumentFromNode(root)

	recipe := models.NewRecipe(pageURL)

	recipe.Title = firstText(doc, sel.Title)

	if desc, exists := doc.Find(sel.Description).First().Attr("content"); exists {
		recipe.Description = strings.TrimSpace(desc)
	}

	recipe.ImageURL = firstImage(doc, sel.Images)

	recipe.Ingredients = allTexts(doc, sel.Ingredients)

	recipe.Instructions = allTexts(doc, sel.Instructions)
	if len(recipe.Instructions) == 0 && sel.StepClass != "" {
		doc.Find("li").Each(func(_ int, s *goquery.Selection) {
			if hasClassToken(s, sel.StepClass) {
				if text := elementText(s); text != "" {
					recipe.Instructions = append(recipe.Instructions, text)
				}
			}
		})
	}

	recipe.Rating = firstText(doc, sel.Rating)
	recipe.PrepTime = firstText(doc, sel.PrepTime)
	recipe.CookTime = firstText(doc, sel.CookTime)
	recipe.TotalTime = firstText(doc, sel.TotalTime)

	recipe.Nutrition = ParseNutritionItems(allTexts(doc, sel.Nutrition))

	// Categories keep duplicates and document order.
	recipe.Categories = allTexts(doc, sel.Categories)

	recipe.Keywords = ExtractKeywords(recipe.Description + " " + strings.Join(recipe.Instructions, " "))

	return recipe, nil
}

// ParseNutritionItems splits "label: value" items on the first colon.
// Items without a colon are ignored; a repeated label keeps the last value.
func ParseNutritionItems(items []string) map[string]string {
	nutrition := make(map[string]string)
	for _, item := range items {
		label, value, found := strings.Cut(item, ":")
		if !found {
			continue
		}
		nutrition[strings.TrimSpace(label)] = strings.TrimSpace(value)
	}
	return nutrition
}

func firstText(doc *goquery.Document, selector string) string {
	if selector == "" {
		return models.NotAvailable
	}
	s := doc.Find(selector).First()
	if s.Length() == 0 {
		return models.NotAvailable
	}
	if text := elementText(s); text != "" {
		return text
	}
	return models.NotAvailable
}

func allTexts(doc *goquery.Document, selector string) []string {
	texts := make([]string, 0)
	if selector == "" {
		return texts
	}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := elementText(s); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// firstImage uses the first candidate selector that matches anything. Only
// the first element of that match is considered; without a src it is N/A.
func firstImage(doc *goquery.Document, candidates []string) string {
	for _, selector := range candidates {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			return strings.TrimSpace(src)
		}
		return models.NotAvailable
	}
	return models.NotAvailable
}

func hasClassToken(s *goquery.Selection, token string) bool {
	class, _ := s.Attr("class")
	for _, c := range strings.Fields(class) {
		if c == token {
			return true
		}
	}
	return false
}

// elementText concatenates the text nodes under the selection and collapses
// whitespace runs to a single space.
func elementText(s *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range s.Nodes {
		collectText(n, &sb)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// stripNonContent removes scripts, styles and comments from the tree.
func stripNonContent(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.ElementNode && (c.Data == "script" || c.Data == "style" || c.Data == "noscript"):
			n.RemoveChild(c)
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		default:
			stripNonContent(c)
		}
		c = next
	}
}
