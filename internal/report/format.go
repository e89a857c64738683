package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Formatting helpers shared by the static renderer, the interactive
// renderer, and the terminal preview.

// Currency formats v with a currency symbol, thousands separators and two
// decimals, e.g. "$1,234.50"
func Currency(symbol string, v float64) string {
	if v < 0 {
		return "-" + symbol + addCommas(fmt.Sprintf("%.2f", -v))
	}
	return symbol + addCommas(fmt.Sprintf("%.2f", v))
}

// Percent formats a fractional value as a percentage with two decimals,
// e.g. 0.0213 -> "2.13%"
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Number formats v with thousands separators and two decimals
func Number(v float64) string {
	return addCommas(fmt.Sprintf("%.2f", v))
}

// Comma formats an integer with thousands separators
func Comma(v int64) string {
	return addCommas(strconv.FormatInt(v, 10))
}

// Magnitude formats v with a K/M/B/T suffix and two decimals, e.g.
// 46_900_000 -> "46.90M". Values below one thousand render as plain integers.
func Magnitude(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// addCommas inserts thousands separators into the integer part of s
func addCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	integer := parts[0]
	var result []byte
	for i, c := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	out := string(result)
	if len(parts) > 1 {
		out += "." + parts[1]
	}
	if neg {
		out = "-" + out
	}
	return out
}
