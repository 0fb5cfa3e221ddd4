// Package match locates ingredient mentions inside free-form instruction
// text, so a step like "fold the flour into the egg mixture" can be linked
// back to the recipe's ingredient records.
package match

import (
	"regexp"
	"strings"

	"mise/internal/recipe"
)

// Match is an ingredient confirmed to be mentioned in a step's text, carrying
// the original amount and units for detail rendering.
type Match struct {
	Name   string `json:"ingredient"`
	Amount string `json:"amount,omitempty"`
	Units  string `json:"units,omitempty"`
}

// Find returns the ingredients whose names appear in text as case-insensitive,
// word-boundary-anchored phrases. Plural variance is tolerated by stripping a
// single trailing "s" from the name and allowing an optional "s"/"es" suffix
// in the text, so "egg" finds "eggs" but never "eggplant". Results follow
// ingredient-list order, one entry per ingredient, and the returned slice is
// never nil.
func Find(text string, ingredients []recipe.Ingredient) []Match {
	matches := make([]Match, 0)
	if strings.TrimSpace(text) == "" {
		return matches
	}

	seen := make(map[string]struct{})
	for _, ing := range ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}

		re, err := phrasePattern(name)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			seen[key] = struct{}{}
			matches = append(matches, Match{
				Name:   ing.Name,
				Amount: ing.Amount,
				Units:  ing.Units,
			})
		}
	}
	return matches
}

// phrasePattern builds the word-boundary regexp for one ingredient name.
func phrasePattern(name string) (*regexp.Regexp, error) {
	base := singularize(strings.ToLower(name))
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(base) + `(?:es|s)?\b`)
}

// singularize strips one trailing "s" from names long enough to carry one,
// leaving double-s endings ("molasses") alone.
func singularize(s string) string {
	if len(s) > 3 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}
