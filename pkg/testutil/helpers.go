// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/calculator"
)

// FindOutcome finds a scenario outcome by name in the results slice.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(results []calculator.Outcome, name string) *calculator.Outcome {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
