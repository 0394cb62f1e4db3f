package closingcost

import (
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
	"github.com/shopspring/decimal"
)

// ItemCost is one priced line of an estimate.
type ItemCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CategoryCost is a priced category.
type CategoryCost struct {
	Category string     `json:"category"`
	Items    []ItemCost `json:"items"`
	Total    float64    `json:"total"`
}

// Estimate is the closing cost total and its per-category breakdown. Errors is
// nil on success; on validation failure Total is 0 and Breakdown is empty.
type Estimate struct {
	Total     float64                 `json:"total"`
	Breakdown []CategoryCost          `json:"breakdown"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
}

// CalculateEstimatedClosingCosts prices the default schedule.
func CalculateEstimatedClosingCosts(purchasePrice, loanAmount float64) Estimate {
	return defaultSchedule.Estimate(purchasePrice, loanAmount)
}

// Estimate validates both inputs and prices every item of s. Nothing is
// computed when either input is invalid.
func (s Schedule) Estimate(purchasePrice, loanAmount float64) Estimate {
	var errs []validation.FieldError
	if fe, ok := validation.Check(purchasePrice, validation.FieldPurchasePrice); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := validation.Check(loanAmount, validation.FieldLoanAmount); !ok {
		errs = append(errs, fe)
	}
	if len(errs) > 0 {
		return Estimate{Total: 0, Breakdown: []CategoryCost{}, Errors: errs}
	}

	loan := decimal.NewFromFloat(loanAmount)
	total := decimal.Zero
	breakdown := make([]CategoryCost, 0, len(s.Categories))

	for _, c := range s.Categories {
		categoryTotal := decimal.Zero
		items := make([]ItemCost, 0, len(c.Items))
		for _, item := range c.Items {
			cost := item.Cost(loan).Round(2)
			categoryTotal = categoryTotal.Add(cost)
			items = append(items, ItemCost{Name: item.Name, Amount: cost.InexactFloat64()})
		}
		total = total.Add(categoryTotal)
		breakdown = append(breakdown, CategoryCost{
			Category: c.Name,
			Items:    items,
			Total:    categoryTotal.InexactFloat64(),
		})
	}

	return Estimate{Total: total.InexactFloat64(), Breakdown: breakdown}
}
