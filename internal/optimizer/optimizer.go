// Package optimizer searches for the tails assay that minimises the cost of a
// unit of enriched product, trading feed consumption against separative work.
package optimizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/enrichment"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/optimization"
	"gonum.org/v1/gonum/floats"
)

// invPhi is 1/φ, the golden-section ratio.
var invPhi = (math.Sqrt(5) - 1) / 2

// ErrEmptyBracket is returned when a search interval has no interior.
var ErrEmptyBracket = errors.New("search bracket is empty")

// Options bound a golden-section search.
type Options struct {
	MaxIterations int     `json:"maxIterations"`
	Tolerance     float64 `json:"tolerance"`
}

// DefaultOptions returns the stock iteration cap and tolerance.
func DefaultOptions() Options {
	return Options{MaxIterations: constants.DefaultMaxIterations, Tolerance: constants.Epsilon}
}

// Normalize fills zero fields with their defaults.
func (o Options) Normalize() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.Epsilon
	}
	return o
}

// Search is the final state of a golden-section search.
type Search struct {
	X          float64
	Value      float64
	Lower      float64
	Upper      float64
	Iterations int
	Converged  bool
}

// GoldenSection minimises a unimodal f over [a, b]. Each iteration discards
// the side of the bracket beyond the worse interior point and evaluates f
// once. It stops when the bracket is narrower than opts.Tolerance or after
// opts.MaxIterations iterations and reports the bracket midpoint.
func GoldenSection(f func(float64) float64, a, b float64, opts Options) (Search, error) {
	if f == nil {
		return Search{}, fmt.Errorf("objective function cannot be nil")
	}
	if !(b > a) {
		return Search{}, fmt.Errorf("%w: [%g, %g]", ErrEmptyBracket, a, b)
	}
	opts = opts.Normalize()

	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)

	iterations := 0
	for b-a >= opts.Tolerance && iterations < opts.MaxIterations {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
		iterations++
	}

	x := a + (b-a)/2
	return Search{
		X:          x,
		Value:      f(x),
		Lower:      a,
		Upper:      b,
		Iterations: iterations,
		Converged:  b-a < opts.Tolerance,
	}, nil
}

// Cost is the price of one unit of product at the given assays.
func Cost(a enrichment.Assays, rates enrichment.CostRates) float64 {
	return enrichment.CostPerProduct(a, rates)
}

// Bracket returns the open interval of admissible tails assays for a feed
// assay, or a *enrichment.DegenerateResultError when it is empty.
func Bracket(feedAssay float64) (float64, float64, error) {
	lower := constants.Epsilon
	upper := feedAssay - constants.Epsilon
	if !(upper > lower) {
		return 0, 0, &enrichment.DegenerateResultError{
			Quantity: "feed assay",
			Value:    feedAssay,
			Reason:   "no tails assay exists strictly below the feed assay",
		}
	}
	return lower, upper, nil
}

// FindOptimumTails returns the tails assay minimising feed plus separative
// work cost per unit of product, with the per-product ratios at that point.
func FindOptimumTails(productAssay, feedAssay float64, rates enrichment.CostRates, opts Options) (optimization.Summary, error) {
	if err := checkInputs(productAssay, feedAssay, rates); err != nil {
		return optimization.Summary{}, err
	}
	lower, upper, err := Bracket(feedAssay)
	if err != nil {
		return optimization.Summary{}, err
	}

	opts = opts.Normalize()
	if opts.Tolerance >= upper-lower {
		return optimization.Summary{}, &enrichment.DegenerateResultError{
			Quantity: "tolerance",
			Value:    opts.Tolerance,
			Reason:   fmt.Sprintf("tolerance is not narrower than the tails bracket of width %g", upper-lower),
		}
	}

	objective := func(tails float64) float64 {
		return Cost(enrichment.Assays{Product: productAssay, Feed: feedAssay, Tails: tails}, rates)
	}
	search, err := GoldenSection(objective, lower, upper, opts)
	if err != nil {
		return optimization.Summary{}, err
	}

	at := enrichment.Assays{Product: productAssay, Feed: feedAssay, Tails: search.X}
	feedPer := enrichment.FeedPerProduct(at)
	swuPer := enrichment.SWUPerProduct(at)
	summary := optimization.Summary{
		ProductAssay:       productAssay,
		FeedAssay:          feedAssay,
		FeedPrice:          rates.FeedPrice,
		SWUPrice:           rates.SWUPrice,
		TailsAssay:         search.X,
		FeedPerProduct:     feedPer,
		TailsPerProduct:    feedPer - 1,
		SWUPerProduct:      swuPer,
		FeedCostPerProduct: rates.FeedPrice * feedPer,
		SWUCostPerProduct:  rates.SWUPrice * swuPer,
		CostPerProduct:     search.Value,
		Lower:              search.Lower,
		Upper:              search.Upper,
		Iterations:         search.Iterations,
		Converged:          search.Converged,
	}
	if !search.Converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"stopped after %d iterations with bracket width %g", search.Iterations, search.Upper-search.Lower))
	}
	if search.X-lower < 2*constants.Epsilon || upper-search.X < 2*constants.Epsilon {
		summary.Notes = append(summary.Notes, "optimum lies on the edge of the admissible tails range")
	}
	return summary, nil
}

// SampleCurve evaluates the per-product feed, separative work and cost at
// points evenly spaced tails assays across the admissible bracket.
func SampleCurve(productAssay, feedAssay float64, rates enrichment.CostRates, points int) ([]optimization.CurvePoint, error) {
	if points < 2 || points > constants.MaxCurvePoints {
		return nil, fmt.Errorf("curve needs between 2 and %d points, got %d", constants.MaxCurvePoints, points)
	}
	if err := checkInputs(productAssay, feedAssay, rates); err != nil {
		return nil, err
	}
	lower, upper, err := Bracket(feedAssay)
	if err != nil {
		return nil, err
	}

	tails := floats.Span(make([]float64, points), lower, upper)
	curve := make([]optimization.CurvePoint, 0, points)
	for _, xw := range tails {
		a := enrichment.Assays{Product: productAssay, Feed: feedAssay, Tails: xw}
		curve = append(curve, optimization.CurvePoint{
			TailsAssay:     xw,
			FeedPerProduct: enrichment.FeedPerProduct(a),
			SWUPerProduct:  enrichment.SWUPerProduct(a),
			CostPerProduct: Cost(a, rates),
		})
	}
	return curve, nil
}

func checkInputs(productAssay, feedAssay float64, rates enrichment.CostRates) error {
	if !(productAssay > feedAssay) {
		return &enrichment.OrderingError{Assays: enrichment.Assays{Product: productAssay, Feed: feedAssay, Tails: constants.Epsilon}}
	}
	return rates.Validate()
}
