// Package money formats monetary values for display and export.
//
// Internal accumulation stays in unrounded float64; rounding to exactly two
// decimal places happens here, at the boundary, and nowhere else.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Format renders a value with exactly two decimal places, rounding half
// away from zero. Non-finite values render as zero, matching the model's
// parse-or-zero coercion rule.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Display prepends the currency symbol: Display("$", 21) == "$21.00".
func Display(symbol string, v float64) string {
	return symbol + Format(v)
}
