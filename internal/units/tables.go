package units

// Conversion tables. All volume factors are milliliters per unit, all weight
// factors grams per unit. Kept as module-scoped maps so adding a spelling or
// a unit is a one-line change.

// gramsPerPound anchors the weight table. The bare-ounce weight factor is
// derived from it (454/16 ≈ 28.4 g), while converting grams back to display
// ounces divides by 28 and oz-as-volume uses 30 mL. The mismatch is a known
// approximation inherited from common recipe practice, not a bug.
const (
	gramsPerPound  = 454.0
	gramsPerOunce  = gramsPerPound / 16
	mlPerFluidOz   = 30.0
	mlPerCup       = 240.0
	mlPerTbsp      = 15.0
	mlPerTsp       = 5.0
	displayOzGrams = 28.0
)

// volumeToML maps normalized volume unit spellings to milliliters per unit.
// Bare "oz"/"ounce" is intentionally absent: it is ambiguous and resolved by
// the liquid-keyword heuristic before reaching this table.
var volumeToML = map[string]float64{
	"cup":  mlPerCup,
	"cups": mlPerCup,
	"c":    mlPerCup,

	"tablespoon":  mlPerTbsp,
	"tablespoons": mlPerTbsp,
	"tbsp":        mlPerTbsp,
	"tbs":         mlPerTbsp,

	"teaspoon":  mlPerTsp,
	"teaspoons": mlPerTsp,
	"tsp":       mlPerTsp,

	"fl oz":        mlPerFluidOz,
	"fl. oz":       mlPerFluidOz,
	"floz":         mlPerFluidOz,
	"fluid ounce":  mlPerFluidOz,
	"fluid ounces": mlPerFluidOz,

	"pint":    473,
	"pints":   473,
	"quart":   946,
	"quarts":  946,
	"gallon":  3785,
	"gallons": 3785,

	"ml":          1,
	"milliliter":  1,
	"milliliters": 1,
	"l":           1000,
	"liter":       1000,
	"liters":      1000,
	"litre":       1000,
	"litres":      1000,
}

// weightToGrams maps normalized weight unit spellings to grams per unit.
var weightToGrams = map[string]float64{
	"pound":  gramsPerPound,
	"pounds": gramsPerPound,
	"lb":     gramsPerPound,
	"lbs":    gramsPerPound,

	"gram":  1,
	"grams": 1,
	"g":     1,

	"kilogram":  1000,
	"kilograms": 1000,
	"kg":        1000,

	"milligram":  0.001,
	"milligrams": 0.001,
	"mg":         0.001,
}

// nonConvertible holds units that describe count, container, or vague
// quantities. Ingredients carrying one of these pass through conversion
// unchanged.
var nonConvertible = map[string]struct{}{
	"":           {},
	"piece":      {},
	"pieces":     {},
	"clove":      {},
	"cloves":     {},
	"slice":      {},
	"slices":     {},
	"whole":      {},
	"wholes":     {},
	"head":       {},
	"heads":      {},
	"bunch":      {},
	"bunches":    {},
	"sprig":      {},
	"sprigs":     {},
	"leaf":       {},
	"leaves":     {},
	"stalk":      {},
	"stalks":     {},
	"rib":        {},
	"ribs":       {},
	"pinch":      {},
	"pinches":    {},
	"dash":       {},
	"dashes":     {},
	"handful":    {},
	"handfuls":   {},
	"package":    {},
	"packages":   {},
	"pkg":        {},
	"can":        {},
	"cans":       {},
	"jar":        {},
	"jars":       {},
	"box":        {},
	"boxes":      {},
	"bag":        {},
	"bags":       {},
	"container":  {},
	"containers": {},
	"to taste":   {},
	"as needed":  {},
	"large":      {},
	"medium":     {},
	"small":      {},
}

// liquidKeywords drives the ambiguous-ounce heuristic: if the ingredient
// name mentions one of these, a bare "oz" is read as fluid ounces.
var liquidKeywords = []string{
	"water",
	"milk",
	"cream",
	"juice",
	"oil",
	"broth",
	"stock",
	"sauce",
	"wine",
	"beer",
	"vinegar",
	"liquid",
}
