package enrichment

import "fmt"

// CostRates are the unit prices used to cost a cascade: currency per kgU of
// feed and currency per SWU.
type CostRates struct {
	FeedPrice float64 `json:"feedPrice"`
	SWUPrice  float64 `json:"swuPrice"`
}

// Validate requires both prices to be strictly positive.
func (r CostRates) Validate() error {
	if !(r.FeedPrice > 0) {
		return &DegenerateResultError{Quantity: "feed price", Value: r.FeedPrice, Reason: "feed price must be positive"}
	}
	if !(r.SWUPrice > 0) {
		return &DegenerateResultError{Quantity: "swu price", Value: r.SWUPrice, Reason: "SWU price must be positive"}
	}
	return nil
}

// String renders the rates for log lines and notes.
func (r CostRates) String() string {
	return fmt.Sprintf("feed %g/kgU, SWU %g/SWU", r.FeedPrice, r.SWUPrice)
}

// CostPerProduct is cf·Fp + cs·SWUp for one unit of product.
func CostPerProduct(a Assays, r CostRates) float64 {
	return r.FeedPrice*FeedPerProduct(a) + r.SWUPrice*SWUPerProduct(a)
}
