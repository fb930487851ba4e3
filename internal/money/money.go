// Package money formats whole-peso amounts for display.
//
// Amounts across the engine are integer pesos (no minor units). The
// presentation convention is a leading "$ " and "." as thousands separator,
// e.g. 42378 -> "$ 42.378".
package money

import (
	"math"
	"strconv"
	"strings"
)

// Format renders an integer peso amount with dot-grouped thousands.
func Format(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.FormatInt(v, 10)

	var b strings.Builder
	b.WriteString("$ ")
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
		if len(digits) > head {
			b.WriteByte('.')
		}
	}
	for i := head; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// FormatFloat rounds to the nearest peso before formatting. Catalog prices
// are stored as floats straight from the spreadsheet; rendering always
// happens at whole-peso resolution.
func FormatFloat(v float64) string {
	return Format(int64(math.Round(v)))
}

// Round converts a spreadsheet price to the integer pesos used everywhere
// downstream of the catalog.
func Round(v float64) int64 {
	return int64(math.Round(v))
}
