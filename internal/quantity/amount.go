package quantity

import "strings"

// Separator styles preserved across a range round-trip.
const (
	SeparatorDash = "-"
	SeparatorTo   = " to "
)

// Amount is a parsed textual amount: either a single value or a min/max
// range. For ranges the separator style found in the source text ("-" or
// " to ") is captured so formatting reproduces it instead of re-deriving it
// from the original string.
type Amount struct {
	Min       float64
	Max       float64
	Range     bool
	Separator string
}

// Single wraps one value as a non-range Amount.
func Single(value float64) Amount {
	return Amount{Min: value, Max: value}
}

// ParseAmount parses a textual amount that may be a range. Text containing
// " to " (case-insensitive) or "-" is split into two independently parsed
// sides; if either side fails the whole range is unparseable. Anything else
// is parsed as a single value.
func ParseAmount(text string) (Amount, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Amount{}, false
	}

	lower := strings.ToLower(s)
	if idx := strings.Index(lower, SeparatorTo); idx >= 0 {
		return parseRange(s[:idx], s[idx+len(SeparatorTo):], SeparatorTo)
	}
	if lo, hi, found := strings.Cut(s, SeparatorDash); found {
		return parseRange(lo, hi, SeparatorDash)
	}

	v, ok := Parse(s)
	if !ok {
		return Amount{}, false
	}
	return Single(v), true
}

func parseRange(lo, hi, separator string) (Amount, bool) {
	min, okMin := Parse(lo)
	max, okMax := Parse(hi)
	if !okMin || !okMax {
		return Amount{}, false
	}
	return Amount{Min: min, Max: max, Range: true, Separator: separator}, true
}

// FormatAmount renders an Amount back to text, re-joining ranges with the
// separator captured at parse time.
func FormatAmount(a Amount) string {
	if !a.Range {
		return Format(a.Min)
	}
	return Format(a.Min) + a.Separator + Format(a.Max)
}

// ScaleAmount multiplies both ends of an amount by factor. Factors that are
// not strictly positive report ok=false and leave the amount untouched.
func ScaleAmount(a Amount, factor float64) (Amount, bool) {
	if factor <= 0 {
		return a, false
	}
	a.Min *= factor
	a.Max *= factor
	return a, true
}

// ScaleText parses, scales and reformats a textual amount in one step.
// Unparseable text or a non-positive factor reports ok=false.
func ScaleText(text string, factor float64) (string, bool) {
	a, ok := ParseAmount(text)
	if !ok {
		return text, false
	}
	scaled, ok := ScaleAmount(a, factor)
	if !ok {
		return text, false
	}
	return FormatAmount(scaled), true
}
