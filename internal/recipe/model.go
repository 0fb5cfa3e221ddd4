package recipe

import (
	"encoding/json"
	"strings"
	"time"
)

// Ingredient is a single structured ingredient line: a raw textual amount,
// a raw unit, and the ingredient name. Amount and Units may be empty when the
// source line had none ("salt to taste" style lines).
type Ingredient struct {
	Amount string `json:"amount,omitempty"`
	Units  string `json:"units,omitempty"`
	Name   string `json:"ingredient"`
}

// GroupEntry is one entry inside an ingredient group. Imported recipes mix
// real ingredient records with plain label strings (sub-headings like
// "For the glaze:"), so an entry is either a heading or an ingredient.
type GroupEntry struct {
	Heading    string
	Ingredient *Ingredient
}

// IsHeading reports whether the entry is a plain label string.
func (e GroupEntry) IsHeading() bool {
	return e.Ingredient == nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for GroupEntry.
// A JSON string becomes a heading; an object becomes an ingredient.
func (e *GroupEntry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		e.Heading = label
		e.Ingredient = nil
		return nil
	}

	var ing Ingredient
	if err := json.Unmarshal(data, &ing); err != nil {
		return err
	}
	e.Heading = ""
	e.Ingredient = &ing
	return nil
}

// MarshalJSON implements the json.Marshaler interface for GroupEntry.
func (e GroupEntry) MarshalJSON() ([]byte, error) {
	if e.Ingredient == nil {
		return json.Marshal(e.Heading)
	}
	return json.Marshal(e.Ingredient)
}

// IngredientGroup is a named collection of group entries ("Main",
// "For the Glaze", ...). Group order and entry order are meaningful.
type IngredientGroup struct {
	GroupName   string       `json:"groupName"`
	Ingredients []GroupEntry `json:"ingredients"`
}

// Recipe represents the structure of an imported recipe.
type Recipe struct {
	ID        string            `json:"id" db:"id"`
	Title     string            `json:"title" db:"title"`
	SourceURL string            `json:"source_url,omitempty" db:"source_url"`
	Servings  string            `json:"servings,omitempty" db:"servings"`
	Groups    []IngredientGroup `json:"ingredient_groups"`
	Steps     []string          `json:"steps"`
	CreatedAt time.Time         `json:"created_at,omitempty" db:"created_at"`
}

// FlattenGroups returns every ingredient record across the groups, in group
// order then entry order, skipping heading entries. The matcher runs over
// this flattened view.
func FlattenGroups(groups []IngredientGroup) []Ingredient {
	var out []Ingredient
	for _, g := range groups {
		for _, e := range g.Ingredients {
			if e.Ingredient != nil {
				out = append(out, *e.Ingredient)
			}
		}
	}
	return out
}
