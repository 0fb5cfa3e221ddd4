// Package units converts structured ingredient amounts between the original,
// metric, and imperial unit systems. Conversion is a pure function: any
// amount it cannot understand leaves the ingredient exactly as it arrived.
package units

import (
	"strings"

	"mise/internal/quantity"
	"mise/internal/recipe"
)

// System is a target unit system.
type System string

// The three recognized unit systems. Original is the identity transform.
const (
	Original System = "original"
	Metric   System = "metric"
	Imperial System = "imperial"
)

// ParseSystem maps a textual system name to a System, case-insensitively.
func ParseSystem(s string) (System, bool) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case Original:
		return Original, true
	case Metric:
		return Metric, true
	case Imperial:
		return Imperial, true
	}
	return "", false
}

// measureKind classifies a unit into a conversion family.
type measureKind int

const (
	kindUnknown measureKind = iota
	kindVolume
	kindWeight
)

// normalizeUnit lowercases, trims, and strips one trailing period so
// "Tbsp." and "tbsp" hit the same table key.
func normalizeUnit(u string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(u)), ".")
}

// isBareOunce reports whether the normalized unit is an ounce spelling with
// no "fl" marker, which could mean either fluid ounces or weight.
func isBareOunce(u string) bool {
	return u == "oz" || u == "ounce" || u == "ounces"
}

// isOzVolume resolves a bare "oz" using the ingredient name: names that
// mention a liquid keyword are read as fluid ounces. Purely lexical; "coconut
// oil" and "olive oil" both count as liquid even though densities differ.
func isOzVolume(ingredientName string) bool {
	name := strings.ToLower(ingredientName)
	for _, kw := range liquidKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// classify resolves a normalized unit to a conversion family and the factor
// into the family's base unit (mL for volume, g for weight). kindUnknown
// means the unit is not recognized and the ingredient must pass through.
func classify(unit, ingredientName string) (measureKind, float64) {
	if isBareOunce(unit) {
		if isOzVolume(ingredientName) {
			return kindVolume, mlPerFluidOz
		}
		return kindWeight, gramsPerOunce
	}
	if ml, ok := volumeToML[unit]; ok {
		return kindVolume, ml
	}
	if g, ok := weightToGrams[unit]; ok {
		return kindWeight, g
	}
	return kindUnknown, 0
}

// targetUnit picks the most natural display unit for a base-unit magnitude
// and returns its label together with the base units per display unit.
func targetUnit(base float64, kind measureKind, system System) (string, float64) {
	switch {
	case kind == kindVolume && system == Metric:
		if base >= 1000 {
			return "L", 1000
		}
		return "mL", 1
	case kind == kindVolume && system == Imperial:
		if base >= mlPerCup {
			return "cups", mlPerCup
		}
		if base >= mlPerTbsp {
			return "Tbsp", mlPerTbsp
		}
		return "tsp", mlPerTsp
	case kind == kindWeight && system == Metric:
		if base >= 1000 {
			return "kg", 1000
		}
		return "g", 1
	default: // weight, imperial
		if base >= gramsPerPound {
			return "lb", gramsPerPound
		}
		return "oz", displayOzGrams
	}
}

// Convert re-expresses an ingredient's amount in the target system. The
// original system, missing amount or units, non-convertible or unrecognized
// units, and unparseable amounts all return the input unchanged; a
// successful conversion returns a shallow copy with only Amount and Units
// replaced.
func Convert(ing recipe.Ingredient, system System) recipe.Ingredient {
	if system == Original {
		return ing
	}
	if ing.Amount == "" || ing.Units == "" {
		return ing
	}

	unit := normalizeUnit(ing.Units)
	if _, ok := nonConvertible[unit]; ok {
		return ing
	}

	kind, factor := classify(unit, ing.Name)
	if kind == kindUnknown {
		return ing
	}

	amount, ok := quantity.ParseAmount(ing.Amount)
	if !ok {
		return ing
	}

	minBase := amount.Min * factor
	maxBase := amount.Max * factor

	// The min end picks the display unit; the max end reuses it so a range
	// never straddles two labels.
	label, perUnit := targetUnit(minBase, kind, system)
	amount.Min = minBase / perUnit
	amount.Max = maxBase / perUnit

	converted := ing
	converted.Amount = quantity.FormatAmount(amount)
	converted.Units = label
	return converted
}

// ConvertGroup converts every ingredient entry in a group, leaving heading
// entries and group metadata untouched.
func ConvertGroup(group recipe.IngredientGroup, system System) recipe.IngredientGroup {
	if system == Original {
		return group
	}

	out := recipe.IngredientGroup{
		GroupName:   group.GroupName,
		Ingredients: make([]recipe.GroupEntry, len(group.Ingredients)),
	}
	for i, entry := range group.Ingredients {
		if entry.Ingredient == nil {
			out.Ingredients[i] = entry
			continue
		}
		converted := Convert(*entry.Ingredient, system)
		out.Ingredients[i] = recipe.GroupEntry{Ingredient: &converted}
	}
	return out
}

// ConvertGroups maps Convert across a nested group structure, preserving
// group order, group names, and per-group entry order.
func ConvertGroups(groups []recipe.IngredientGroup, system System) []recipe.IngredientGroup {
	if system == Original {
		return groups
	}

	out := make([]recipe.IngredientGroup, len(groups))
	for i, g := range groups {
		out[i] = ConvertGroup(g, system)
	}
	return out
}
