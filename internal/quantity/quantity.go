// Package quantity parses and formats human-written recipe amounts:
// integers, decimals, simple fractions, mixed numbers, unicode fraction
// glyphs, and "2-3" / "2 to 3" style ranges.
package quantity

import (
	"math"
	"strconv"
	"strings"
)

// fractionEpsilon is how close a value must be to a common culinary fraction
// before Format renders it as a glyph instead of a decimal.
const fractionEpsilon = 0.02

// glyphValues maps unicode vulgar-fraction glyphs to their numeric values.
var glyphValues = map[rune]float64{
	'½': 1.0 / 2,
	'⅓': 1.0 / 3,
	'⅔': 2.0 / 3,
	'¼': 1.0 / 4,
	'¾': 3.0 / 4,
	'⅕': 1.0 / 5,
	'⅖': 2.0 / 5,
	'⅗': 3.0 / 5,
	'⅘': 4.0 / 5,
	'⅙': 1.0 / 6,
	'⅚': 5.0 / 6,
	'⅛': 1.0 / 8,
	'⅜': 3.0 / 8,
	'⅝': 5.0 / 8,
	'⅞': 7.0 / 8,
}

// formatFractions lists the fractions Format is allowed to emit. Adjacent
// entries are more than two epsilons apart, so at most one can match a given
// value. Halves, thirds, quarters and eighths only; fifths and sixths are
// accepted by Parse but never produced.
var formatFractions = []struct {
	value float64
	glyph string
}{
	{1.0 / 8, "⅛"},
	{1.0 / 4, "¼"},
	{1.0 / 3, "⅓"},
	{3.0 / 8, "⅜"},
	{1.0 / 2, "½"},
	{5.0 / 8, "⅝"},
	{2.0 / 3, "⅔"},
	{3.0 / 4, "¾"},
	{7.0 / 8, "⅞"},
}

// Parse converts a textual amount to a number. It accepts integers ("2"),
// decimals ("1.5"), fractions ("1/2"), mixed numbers ("1 1/2"), fraction
// glyphs ("½", "1 ½", "1½") and returns ok=false for anything else,
// including empty strings, prose ("a pinch") and zero denominators.
func Parse(text string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}

	// A trailing glyph may be attached directly to a whole number ("1½").
	runes := []rune(s)
	if frac, ok := glyphValues[runes[len(runes)-1]]; ok {
		head := strings.TrimSpace(string(runes[:len(runes)-1]))
		if head == "" {
			return frac, true
		}
		whole, err := strconv.ParseFloat(head, 64)
		if err != nil || whole < 0 {
			return 0, false
		}
		return whole + frac, true
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return parseToken(fields[0])
	case 2:
		// Mixed number: a whole part followed by a fraction.
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || whole < 0 {
			return 0, false
		}
		if !strings.Contains(fields[1], "/") {
			return 0, false
		}
		frac, ok := parseToken(fields[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	default:
		return 0, false
	}
}

// parseToken handles a single token: a fraction with a slash, or a plain
// integer/decimal.
func parseToken(tok string) (float64, bool) {
	if num, den, found := strings.Cut(tok, "/"); found {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 || n < 0 || d < 0 {
			return 0, false
		}
		v := n / d
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Format renders a numeric amount as compact text. Whole numbers drop the
// decimal point, values near a common culinary fraction become a glyph
// ("¾", "1 ½"), and everything else is a decimal rounded to two places with
// trailing zeros trimmed.
func Format(value float64) string {
	if value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return formatDecimal(value)
	}

	whole := math.Floor(value)
	frac := value - whole

	if frac < fractionEpsilon {
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}
	if frac > 1-fractionEpsilon {
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}

	for _, f := range formatFractions {
		if math.Abs(frac-f.value) < fractionEpsilon {
			if whole == 0 {
				return f.glyph
			}
			return strconv.FormatFloat(whole, 'f', -1, 64) + " " + f.glyph
		}
	}

	return formatDecimal(value)
}

// formatDecimal rounds to two fractional digits and trims trailing zeros.
func formatDecimal(value float64) string {
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
