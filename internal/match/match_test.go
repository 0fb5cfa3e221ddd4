package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mise/internal/recipe"
)

func TestFind_WordBoundary(t *testing.T) {
	ingredients := []recipe.Ingredient{{Amount: "2", Name: "egg"}}

	// "egg" must not match inside "eggplant".
	matches := Find("add eggplant and stir", ingredients)
	assert.Empty(t, matches)

	// But it must match the plural "eggs".
	matches = Find("add 2 eggs", ingredients)
	assert.Len(t, matches, 1)
	assert.Equal(t, "egg", matches[0].Name)
	assert.Equal(t, "2", matches[0].Amount)
}

func TestFind_CaseInsensitive(t *testing.T) {
	ingredients := []recipe.Ingredient{{Amount: "1", Units: "cup", Name: "Flour"}}
	matches := Find("Sift the FLOUR into the bowl", ingredients)
	assert.Len(t, matches, 1)
	assert.Equal(t, "Flour", matches[0].Name)
	assert.Equal(t, "cup", matches[0].Units)
}

func TestFind_PluralNameSingularText(t *testing.T) {
	ingredients := []recipe.Ingredient{{Amount: "3", Name: "carrots"}}
	matches := Find("dice one carrot finely", ingredients)
	assert.Len(t, matches, 1)
	assert.Equal(t, "carrots", matches[0].Name)
}

func TestFind_MultiWordPhrase(t *testing.T) {
	ingredients := []recipe.Ingredient{
		{Amount: "2", Units: "Tbsp", Name: "olive oil"},
		{Amount: "1", Name: "onion"},
	}
	matches := Find("Heat the olive oil, then add the onion.", ingredients)
	assert.Len(t, matches, 2)
	// Results follow ingredient-list order.
	assert.Equal(t, "olive oil", matches[0].Name)
	assert.Equal(t, "onion", matches[1].Name)
}

func TestFind_NoMatchesIsEmptyNotNil(t *testing.T) {
	ingredients := []recipe.Ingredient{{Name: "saffron"}}

	matches := Find("boil the water", ingredients)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)

	matches = Find("", ingredients)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)

	matches = Find("boil the water", nil)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestFind_DeduplicatesRepeatedNames(t *testing.T) {
	ingredients := []recipe.Ingredient{
		{Amount: "1", Units: "cup", Name: "butter"},
		{Amount: "2", Units: "Tbsp", Name: "Butter"},
	}
	matches := Find("melt the butter", ingredients)
	assert.Len(t, matches, 1)
	assert.Equal(t, "butter", matches[0].Name)
}

func TestFind_Deterministic(t *testing.T) {
	ingredients := []recipe.Ingredient{
		{Name: "flour"},
		{Name: "sugar"},
		{Name: "butter"},
	}
	text := "cream the butter and sugar, then fold in the flour"

	first := Find(text, ingredients)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Find(text, ingredients))
	}
}
