package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "US$"
	// Intl's es-ES currency format separates amount and symbol with a
	// no-break space.
	currencySeparator = "\u00a0"
)

var spanish = message.NewPrinter(language.Spanish)

// FormatCurrency renders a dollar amount with Spanish number conventions,
// e.g. 12.5 -> "12,50\u00a0US$" (the gap is U+00A0, not an ASCII space).
func FormatCurrency(v float64) string {
	return spanish.Sprintf("%.2f", v) + currencySeparator + currencySymbol
}

// ToNumber coerces a decoded JSON scalar into a finite float.
// Strings are parsed after trimming and "" counts as 0. nil is not a number.
func ToNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Unique drops empty strings and repeats, keeping first occurrences.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
