package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mise/internal/match"
	"mise/internal/recipe"
	"mise/internal/units"
)

// RecipeStore defines the interface for recipe data operations.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, recipe *recipe.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*recipe.Recipe, error)
	ListRecentRecipes(ctx context.Context, limit int) ([]*recipe.Recipe, error)
}

// Handler handles HTTP requests.
type Handler struct {
	RecipeStore RecipeStore
	Log         *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(recipeStore RecipeStore, log *zap.Logger) *Handler {
	return &Handler{RecipeStore: recipeStore, Log: log}
}

// convertRequest is the body of POST /v1/convert.
type convertRequest struct {
	Groups []recipe.IngredientGroup `json:"ingredient_groups"`
	System string                   `json:"system"`
}

// ConvertIngredients re-expresses every ingredient amount in the requested
// unit system, preserving group structure.
func (h *Handler) ConvertIngredients(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}

	system, ok := units.ParseSystem(req.System)
	if !ok {
		c.String(http.StatusBadRequest, fmt.Sprintf("unknown unit system: %q (want original, metric, or imperial)", req.System))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"system":            system,
		"ingredient_groups": units.ConvertGroups(req.Groups, system),
	})
}

// scaleRequest is the body of POST /v1/scale.
type scaleRequest struct {
	Groups []recipe.IngredientGroup `json:"ingredient_groups"`
	Factor float64                  `json:"factor"`
}

// ScaleIngredients multiplies every parseable amount by the given factor.
func (h *Handler) ScaleIngredients(c *gin.Context) {
	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}

	if req.Factor <= 0 {
		c.String(http.StatusBadRequest, "scale factor must be greater than zero")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"factor":            req.Factor,
		"ingredient_groups": recipe.ScaleGroups(req.Groups, req.Factor),
	})
}

// matchRequest is the body of POST /v1/match. Callers send either a flat
// ingredient list or the grouped structure they already hold.
type matchRequest struct {
	Text        string                   `json:"text"`
	Ingredients []recipe.Ingredient      `json:"ingredients"`
	Groups      []recipe.IngredientGroup `json:"ingredient_groups"`
}

// MatchStep reports which ingredients are mentioned in a step's text.
func (h *Handler) MatchStep(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}

	ingredients := req.Ingredients
	if len(ingredients) == 0 {
		ingredients = recipe.FlattenGroups(req.Groups)
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": match.Find(req.Text, ingredients),
	})
}

// SaveRecipe stores a structured recipe posted by the importer, assigning an
// id when the importer did not provide one.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}

	if r.Title == "" {
		c.String(http.StatusBadRequest, "recipe title is required")
		return
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.RecipeStore.SaveRecipe(ctx, &r); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database save timed out after 5 seconds")
			return
		}
		h.Log.Error("failed to save recipe", zap.String("id", r.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to save recipe: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, r)
}

// GetRecipes handles requests to retrieve the most recently saved recipes.
func (h *Handler) GetRecipes(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.String(http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecentRecipes(ctx, limit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database query timed out after 5 seconds")
			return
		}
		h.Log.Error("failed to list recipes", zap.Error(err))
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by id. The optional
// "units" and "scale" query parameters apply unit conversion and amount
// scaling to the returned ingredient groups.
func (h *Handler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	system := units.Original
	if raw := c.Query("units"); raw != "" {
		parsed, ok := units.ParseSystem(raw)
		if !ok {
			c.String(http.StatusBadRequest, fmt.Sprintf("unknown unit system: %q", raw))
			return
		}
		system = parsed
	}

	factor := 1.0
	if raw := c.Query("scale"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.String(http.StatusBadRequest, "scale must be a positive number")
			return
		}
		factor = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	r, err := h.RecipeStore.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database query timed out after 5 seconds")
			return
		}
		h.Log.Error("failed to get recipe", zap.String("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	// Scale first so the magnitude-based target-unit choice sees the final
	// quantities.
	r.Groups = units.ConvertGroups(recipe.ScaleGroups(r.Groups, factor), system)

	c.JSON(http.StatusOK, r)
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
