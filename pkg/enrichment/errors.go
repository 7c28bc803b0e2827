package enrichment

import (
	"errors"
	"fmt"
)

// Sentinels matched through errors.Is.
var (
	ErrOrdering    = errors.New("invalid assay ordering")
	ErrDegenerate  = errors.New("degenerate result")
	ErrConsistency = errors.New("mass balance inconsistency")
)

// OrderingError reports an assay triple that violates product > feed > tails.
type OrderingError struct {
	Assays Assays
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("invalid assay ordering: product %g > feed %g > tails %g does not hold",
		e.Assays.Product, e.Assays.Feed, e.Assays.Tails)
}

func (e *OrderingError) Is(target error) bool { return target == ErrOrdering }

// DegenerateResultError reports a derived quantity outside its physical domain.
type DegenerateResultError struct {
	Quantity string
	Value    float64
	Reason   string
}

func (e *DegenerateResultError) Error() string {
	return fmt.Sprintf("%s (%s = %g)", e.Reason, e.Quantity, e.Value)
}

func (e *DegenerateResultError) Is(target error) bool { return target == ErrDegenerate }

// ConsistencyError reports a computed balance where F differs from P + W.
type ConsistencyError struct {
	Feed, Product, Tails float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("mass balance violated: feed %g != product %g + tails %g (residual %g)",
		e.Feed, e.Product, e.Tails, e.Feed-(e.Product+e.Tails))
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }
