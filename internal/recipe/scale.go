package recipe

import "mise/internal/quantity"

// ScaleIngredient multiplies an ingredient's amount by factor, reformatting
// the result. Ingredients whose amount is missing or unparseable, and any
// non-positive factor, come back unchanged.
func ScaleIngredient(ing Ingredient, factor float64) Ingredient {
	if ing.Amount == "" {
		return ing
	}
	scaled, ok := quantity.ScaleText(ing.Amount, factor)
	if !ok {
		return ing
	}
	out := ing
	out.Amount = scaled
	return out
}

// ScaleGroups maps ScaleIngredient across a nested group structure. Heading
// entries, group order and entry order are preserved. A factor of 1 returns
// the input as-is.
func ScaleGroups(groups []IngredientGroup, factor float64) []IngredientGroup {
	if factor == 1 {
		return groups
	}

	out := make([]IngredientGroup, len(groups))
	for i, g := range groups {
		scaled := IngredientGroup{
			GroupName:   g.GroupName,
			Ingredients: make([]GroupEntry, len(g.Ingredients)),
		}
		for j, entry := range g.Ingredients {
			if entry.Ingredient == nil {
				scaled.Ingredients[j] = entry
				continue
			}
			ing := ScaleIngredient(*entry.Ingredient, factor)
			scaled.Ingredients[j] = GroupEntry{Ingredient: &ing}
		}
		out[i] = scaled
	}
	return out
}
