// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/lp-bulk/internal/row"
)

// FindOutcome finds an offer outcome by item name in the results slice.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(results []row.Outcome, item string) *row.Outcome {
	for i := range results {
		if results[i].Raw.Item == item {
			return &results[i]
		}
	}
	return nil
}
