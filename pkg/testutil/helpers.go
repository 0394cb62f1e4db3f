// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/va-loan-calculator/internal/quote"
)

// FindQuote finds a quote by scenario name in the results slice.
// Returns a pointer to the quote if found, nil otherwise.
func FindQuote(results []quote.Quote, name string) *quote.Quote {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
