package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/romangod6/recipe-crawler/internal/models"
	"github.com/romangod6/recipe-crawler/internal/robots"
	"github.com/romangod6/recipe-crawler/internal/storage"
	"github.com/romangod6/recipe-crawler/internal/utils"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	recipes    storage.RecipeReader
	archive    storage.Store
	robotsPath string
	log        *logrus.Entry
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count"`
}

// NewHandler serves recipes from reader. archive may be nil, in which case
// the runs endpoint reports that no archive is configured.
func NewHandler(reader storage.RecipeReader, archive storage.Store, robotsPath string, logger *utils.CrawlerLogger) *Handler {
	return &Handler{
		recipes:    reader,
		archive:    archive,
		robotsPath: robotsPath,
		log:        logger.Entry("api"),
	}
}

func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, ok := h.loadRecipes(c)
	if !ok {
		return
	}

	minIngredients, _ := strconv.Atoi(c.DefaultQuery("min_ingredients", "0"))
	maxIngredients, _ := strconv.Atoi(c.DefaultQuery("max_ingredients", "0"))
	if minIngredients > 0 || maxIngredients > 0 {
		recipes = filterRecipes(recipes, func(r *models.Recipe) bool {
			n := len(r.Ingredients)
			return n >= minIngredients && (maxIngredients <= 0 || n <= maxIngredients)
		})
	}

	h.respondPage(c, recipes)
}

func (h *Handler) SearchRecipes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Search query is required"})
		return
	}

	recipes, ok := h.loadRecipes(c)
	if !ok {
		return
	}

	term := strings.ToLower(query)
	h.respondPage(c, filterRecipes(recipes, func(r *models.Recipe) bool {
		return matchesRecipe(r, term)
	}))
}

func (h *Handler) RecipeStats(c *gin.Context) {
	recipes, ok := h.loadRecipes(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ComputeStats(recipes))
}

func (h *Handler) GetRobots(c *gin.Context) {
	summary, err := robots.Load(h.robotsPath)
	if errors.Is(err, robots.ErrNoSummary) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Robots summary not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("failed to load robots summary")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load robots summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No archive configured"})
		return
	}

	_, limit := getPaginationParams(c)
	runs, err := h.archive.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.log.WithError(err).Error("failed to list runs")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch runs"})
		return
	}

	c.JSON(http.StatusOK, runs)
}

func (h *Handler) loadRecipes(c *gin.Context) ([]*models.Recipe, bool) {
	recipes, err := h.recipes.LoadRecipes(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to load recipes")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch recipes"})
		return nil, false
	}
	return recipes, true
}

func (h *Handler) respondPage(c *gin.Context, recipes []*models.Recipe) {
	page, limit := getPaginationParams(c)

	// Bound page before multiplying; large values would overflow.
	start := len(recipes)
	if page-1 <= len(recipes)/limit {
		start = min((page-1)*limit, len(recipes))
	}
	end := start + limit
	if end > len(recipes) {
		end = len(recipes)
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:       recipes[start:end],
		Page:       page,
		Limit:      limit,
		TotalCount: len(recipes),
	})
}

// matchesRecipe reports whether the lowercased term occurs in the title,
// an ingredient, a category or a keyword.
func matchesRecipe(r *models.Recipe, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, group := range [][]string{r.Ingredients, r.Categories, r.Keywords} {
		for _, s := range group {
			if strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
	}
	return false
}

func filterRecipes(recipes []*models.Recipe, keep func(*models.Recipe) bool) []*models.Recipe {
	out := make([]*models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
