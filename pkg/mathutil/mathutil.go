// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// RoundTo rounds val half away from zero to the given number of decimal places.
// Used by the presentation layer only; the solvers keep full precision.
func RoundTo(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	rounded, _ := decimal.NewFromFloat(val).Round(places).Float64()
	return rounded
}

// FixedString renders val with exactly the given number of decimal places.
func FixedString(val float64, places int32) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return "NaN"
	}
	return decimal.NewFromFloat(val).StringFixed(places)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// FromPercent converts a percentage to a fraction.
func FromPercent(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ToPercent converts a fraction to a percentage.
func ToPercent(fraction float64) float64 {
	return fraction * constants.PercentageMultiplier
}
