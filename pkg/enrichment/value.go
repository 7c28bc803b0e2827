// Package enrichment implements the separative work algebra for uranium
// enrichment: the value function, the mass balance and the closed-form
// solvers for each combination of known quantities.
//
// Every function in this package is pure. Assays are fractions in (0, 1) and
// masses are kilograms of uranium; callers are expected to have validated raw
// input through package parse.
package enrichment

import (
	"math"

	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/mathutil"
)

// Value is the separation potential V(x) = (1-2x)·ln((1-x)/x). x is clamped
// into [Epsilon, 1-Epsilon] first so round-off upstream cannot reach the
// singularities at 0 and 1.
func Value(x float64) float64 {
	x = mathutil.Clamp(x, constants.Epsilon, 1-constants.Epsilon)
	return (1 - 2*x) * math.Log((1-x)/x)
}
