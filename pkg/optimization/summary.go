// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the outcome of a tails assay optimization. All per-product
// figures are per unit mass of product.
type Summary struct {
	ProductAssay       float64  `json:"productAssay"`
	FeedAssay          float64  `json:"feedAssay"`
	FeedPrice          float64  `json:"feedPrice"`
	SWUPrice           float64  `json:"swuPrice"`
	TailsAssay         float64  `json:"tailsAssay"`
	FeedPerProduct     float64  `json:"feedPerProduct"`
	TailsPerProduct    float64  `json:"tailsPerProduct"`
	SWUPerProduct      float64  `json:"swuPerProduct"`
	FeedCostPerProduct float64  `json:"feedCostPerProduct"`
	SWUCostPerProduct  float64  `json:"swuCostPerProduct"`
	CostPerProduct     float64  `json:"costPerProduct"`
	Lower              float64  `json:"lower"`
	Upper              float64  `json:"upper"`
	Iterations         int      `json:"iterations"`
	Converged          bool     `json:"converged"`
	Notes              []string `json:"notes,omitempty"`
}

// CurvePoint is one sample of the per-product cost curve over tails assay.
type CurvePoint struct {
	TailsAssay     float64 `json:"tailsAssay"`
	FeedPerProduct float64 `json:"feedPerProduct"`
	SWUPerProduct  float64 `json:"swuPerProduct"`
	CostPerProduct float64 `json:"costPerProduct"`
}
