package enrichment

import (
	"math"

	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/mathutil"
	"gonum.org/v1/gonum/floats/scalar"
)

// Assays holds the product, feed and tails assays of one cascade.
type Assays struct {
	Product float64 `json:"productAssay"`
	Feed    float64 `json:"feedAssay"`
	Tails   float64 `json:"tailsAssay"`
}

// Validate returns an *OrderingError unless Product > Feed > Tails.
func (a Assays) Validate() error {
	if !(a.Product > a.Feed && a.Feed > a.Tails) {
		return &OrderingError{Assays: a}
	}
	return nil
}

// FeedPerProduct is the feed needed per unit of product, (xp-xw)/(xf-xw).
func FeedPerProduct(a Assays) float64 {
	return (a.Product - a.Tails) / (a.Feed - a.Tails)
}

// TailsPerProduct is the tails produced per unit of product, (xp-xf)/(xf-xw).
func TailsPerProduct(a Assays) float64 {
	return (a.Product - a.Feed) / (a.Feed - a.Tails)
}

// SWUPerProduct is the separative work per unit of product.
func SWUPerProduct(a Assays) float64 {
	return Value(a.Product) + TailsPerProduct(a)*Value(a.Tails) - FeedPerProduct(a)*Value(a.Feed)
}

// Balance is the solved state of a cascade: masses in kgU and separative
// work in SWU.
type Balance struct {
	Assays  Assays  `json:"assays"`
	Feed    float64 `json:"feed"`
	Product float64 `json:"product"`
	Tails   float64 `json:"tails"`
	SWU     float64 `json:"swu"`
}

// Check returns a *ConsistencyError when Feed and Product+Tails differ by
// more than MassBalanceTolerance, absolute or relative to the masses.
func (b Balance) Check() error {
	if math.IsNaN(b.Feed) || !scalar.EqualWithinAbsOrRel(b.Feed, b.Product+b.Tails, constants.MassBalanceTolerance, constants.MassBalanceTolerance) {
		return &ConsistencyError{Feed: b.Feed, Product: b.Product, Tails: b.Tails}
	}
	return nil
}

// FeedPerProduct returns Feed/Product.
func (b Balance) FeedPerProduct() float64 {
	return b.Feed / b.Product
}

// SWUPerProduct returns SWU/Product.
func (b Balance) SWUPerProduct() float64 {
	return b.SWU / b.Product
}

// UnitProduct solves for feed, tails and SWU per kilogram of product.
func UnitProduct(a Assays) (Balance, error) {
	return FromProduct(a, 1)
}

// FromProduct solves for feed, tails and SWU given the product mass.
func FromProduct(a Assays, product float64) (Balance, error) {
	if err := a.Validate(); err != nil {
		return Balance{}, err
	}
	if !(product > 0) {
		return Balance{}, &DegenerateResultError{Quantity: "product", Value: product, Reason: "product mass must be positive"}
	}

	feed := FeedPerProduct(a) * product
	return settle(a, feed, product)
}

// FromFeed solves for product, tails and SWU given the feed mass.
func FromFeed(a Assays, feed float64) (Balance, error) {
	if err := a.Validate(); err != nil {
		return Balance{}, err
	}
	if !(feed > 0) {
		return Balance{}, &DegenerateResultError{Quantity: "feed", Value: feed, Reason: "feed mass must be positive"}
	}

	product := (a.Feed - a.Tails) / (a.Product - a.Tails) * feed
	if !(product > 0) {
		return Balance{}, &DegenerateResultError{Quantity: "product", Value: product, Reason: "computed product mass must be positive"}
	}
	return settle(a, feed, product)
}

// FromSWU solves for product, feed and tails given the separative work
// available.
func FromSWU(a Assays, swu float64) (Balance, error) {
	if err := a.Validate(); err != nil {
		return Balance{}, err
	}
	if !(swu > 0) {
		return Balance{}, &DegenerateResultError{Quantity: "swu", Value: swu, Reason: "separative work must be positive"}
	}

	denom := SWUPerProduct(a)
	if math.Abs(denom) < constants.Epsilon {
		return Balance{}, &DegenerateResultError{Quantity: "swu per product", Value: denom, Reason: "denominator too small"}
	}
	product := swu / denom
	if !mathutil.IsFinite(product) || !(product > 0) {
		return Balance{}, &DegenerateResultError{Quantity: "product", Value: product, Reason: "computed product mass must be positive"}
	}
	return FromProduct(a, product)
}

func settle(a Assays, feed, product float64) (Balance, error) {
	tails := feed - product
	b := Balance{
		Assays:  a,
		Feed:    feed,
		Product: product,
		Tails:   tails,
		SWU:     product*Value(a.Product) + tails*Value(a.Tails) - feed*Value(a.Feed),
	}
	for _, q := range []struct {
		name  string
		value float64
	}{{"feed", b.Feed}, {"product", b.Product}, {"tails", b.Tails}, {"swu", b.SWU}} {
		if !mathutil.IsFinite(q.value) {
			return Balance{}, &DegenerateResultError{Quantity: q.name, Value: q.value, Reason: "result is not a finite number"}
		}
	}
	if err := b.Check(); err != nil {
		return Balance{}, err
	}
	return b, nil
}
