package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"mise/internal/api"
	"mise/internal/recipe"
)

// newTestRouter wires the handler against the in-memory store, mirroring the
// routes registered in main.
func newTestRouter() (*gin.Engine, *recipe.MemoryStore) {
	gin.SetMode(gin.TestMode)

	store := recipe.NewMemoryStore()
	handler := api.NewHandler(store, zap.NewNop())

	r := gin.New()
	r.POST("/v1/convert", handler.ConvertIngredients)
	r.POST("/v1/scale", handler.ScaleIngredients)
	r.POST("/v1/match", handler.MatchStep)
	r.POST("/recipes", handler.SaveRecipe)
	r.GET("/recipes", handler.GetRecipes)
	r.GET("/recipes/:id", handler.GetRecipe)
	r.GET("/healthz", handler.Health)
	return r, store
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestConvertEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/convert", gin.H{
		"system": "metric",
		"ingredient_groups": []gin.H{
			{
				"groupName": "Main",
				"ingredients": []any{
					"For the sauce:",
					gin.H{"amount": "1", "units": "cup", "ingredient": "milk"},
					gin.H{"amount": "2", "units": "cloves", "ingredient": "garlic"},
				},
			},
		},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		System string                   `json:"system"`
		Groups []recipe.IngredientGroup `json:"ingredient_groups"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "metric", resp.System)
	assert.Len(t, resp.Groups, 1)

	entries := resp.Groups[0].Ingredients
	assert.Len(t, entries, 3)
	assert.True(t, entries[0].IsHeading())
	assert.Equal(t, "240", entries[1].Ingredient.Amount)
	assert.Equal(t, "mL", entries[1].Ingredient.Units)
	// Non-convertible units pass through untouched.
	assert.Equal(t, "cloves", entries[2].Ingredient.Units)
}

func TestConvertEndpoint_UnknownSystem(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/convert", gin.H{
		"system":            "nautical",
		"ingredient_groups": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScaleEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/scale", gin.H{
		"factor": 2,
		"ingredient_groups": []gin.H{
			{
				"groupName": "Main",
				"ingredients": []any{
					gin.H{"amount": "1 ½", "units": "cups", "ingredient": "flour"},
				},
			},
		},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Groups []recipe.IngredientGroup `json:"ingredient_groups"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "3", resp.Groups[0].Ingredients[0].Ingredient.Amount)
}

func TestScaleEndpoint_BadFactor(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/scale", gin.H{
		"factor":            0,
		"ingredient_groups": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(t, r, "/v1/scale", gin.H{
		"factor":            -2,
		"ingredient_groups": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/match", gin.H{
		"text": "add 2 eggs and the milk",
		"ingredients": []gin.H{
			{"amount": "2", "ingredient": "egg"},
			{"amount": "1", "units": "cup", "ingredient": "milk"},
			{"amount": "1", "ingredient": "eggplant"},
		},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Matches []struct {
			Name   string `json:"ingredient"`
			Amount string `json:"amount"`
			Units  string `json:"units"`
		} `json:"matches"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Matches, 2)
	assert.Equal(t, "egg", resp.Matches[0].Name)
	assert.Equal(t, "milk", resp.Matches[1].Name)
	assert.Equal(t, "cup", resp.Matches[1].Units)
}

func TestMatchEndpoint_AcceptsGroups(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/match", gin.H{
		"text": "whisk the milk into the flour",
		"ingredient_groups": []gin.H{
			{
				"groupName": "Main",
				"ingredients": []any{
					"For the batter:",
					gin.H{"amount": "1", "units": "cup", "ingredient": "milk"},
					gin.H{"amount": "2", "units": "cups", "ingredient": "flour"},
				},
			},
		},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Matches []struct {
			Name string `json:"ingredient"`
		} `json:"matches"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Matches, 2)
	assert.Equal(t, "milk", resp.Matches[0].Name)
	assert.Equal(t, "flour", resp.Matches[1].Name)
}

func TestMatchEndpoint_NoMatchesIsEmptyArray(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/v1/match", gin.H{
		"text":        "preheat the oven",
		"ingredients": []gin.H{{"ingredient": "saffron"}},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"matches":[]}`, rr.Body.String())
}

func TestSaveAndGetRecipe(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/recipes", gin.H{
		"title": "Béchamel",
		"ingredient_groups": []gin.H{
			{
				"groupName": "Main",
				"ingredients": []any{
					gin.H{"amount": "2", "units": "cups", "ingredient": "milk"},
				},
			},
		},
		"steps": []string{"Warm the milk.", "Whisk in the roux."},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var saved recipe.Recipe
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID, "save must assign an id")

	// Plain fetch returns the stored recipe unchanged.
	req := httptest.NewRequest(http.MethodGet, "/recipes/"+saved.ID, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched recipe.Recipe
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, "Béchamel", fetched.Title)
	assert.Equal(t, "2", fetched.Groups[0].Ingredients[0].Ingredient.Amount)

	// Conversion and scaling applied server-side via query parameters:
	// 2 cups × 2 = 4 cups = 960 mL.
	req = httptest.NewRequest(http.MethodGet, "/recipes/"+saved.ID+"?units=metric&scale=2", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	ing := fetched.Groups[0].Ingredients[0].Ingredient
	assert.Equal(t, "960", ing.Amount)
	assert.Equal(t, "mL", ing.Units)
}

func TestGetRecipe_NotFound(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/recipes/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetRecipe_BadQueryParams(t *testing.T) {
	r, store := newTestRouter()
	assert.NoError(t, store.SaveRecipe(context.Background(), &recipe.Recipe{ID: "r1", Title: "Toast"}))

	req := httptest.NewRequest(http.MethodGet, "/recipes/r1?units=nautical", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/recipes/r1?scale=-1", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSaveRecipe_MissingTitle(t *testing.T) {
	r, _ := newTestRouter()

	rr := postJSON(t, r, "/recipes", gin.H{"steps": []string{"do nothing"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListRecipes(t *testing.T) {
	r, _ := newTestRouter()

	for _, title := range []string{"First", "Second", "Third"} {
		rr := postJSON(t, r, "/recipes", gin.H{"title": title})
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/recipes?limit=2", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var recipes []recipe.Recipe
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 2)
	assert.Equal(t, "Third", recipes[0].Title)
	assert.Equal(t, "Second", recipes[1].Title)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
