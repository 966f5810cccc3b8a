package domain

import (
	"math"
	"strconv"
	"strings"
)

// RoundPrice rounds half up, matching how the results table displays prices.
func RoundPrice(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FormatPriceWhole formats a price as whole dollars with thousands separators.
func FormatPriceWhole(v float64) string {
	return FormatCurrency(v, "$", 0)
}

// FormatPrice formats a price with cents.
func FormatPrice(v float64) string {
	return FormatCurrency(v, "$", 2)
}

// FormatCurrency rounds v to the given decimals and prefixes the symbol.
func FormatCurrency(v float64, symbol string, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	rounded := RoundPrice(v*scale) / scale

	neg := rounded < 0
	if neg {
		rounded = -rounded
	}
	s := strconv.FormatFloat(rounded, 'f', decimals, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
