// Package validation range-checks calculator inputs and reports structured,
// user-facing validation results. Validators never panic and never return Go
// errors; every input produces a Result.
package validation

import (
	"math"
	"sort"
)

// Field keys shared by the calculators, the scenario configuration and the HTTP API.
const (
	FieldHomePrice          = "homePrice"
	FieldPurchasePrice      = "purchasePrice"
	FieldLoanAmount         = "loanAmount"
	FieldDownPayment        = "downPayment"
	FieldDownPaymentPercent = "downPaymentPercent"
	FieldInterestRate       = "interestRate"
	FieldLoanTerm           = "loanTerm"
	FieldPropertyTaxRate    = "propertyTaxRate"
	FieldHomeInsurance      = "homeInsurance"
	FieldHOAFees            = "hoaFees"
	FieldMonthlyIncome      = "monthlyIncome"
	FieldMonthlyDebts       = "monthlyDebts"
	FieldHousingPayment     = "housingPayment"
	FieldTargetRatio        = "targetRatio"
)

// Generic messages, checked before any field-specific range.
const (
	MessageNegative = "Value cannot be negative"
	MessageInvalid  = "Please enter a valid number"
)

// Range is an inclusive [Min, Max] bound with the message shown when a value
// falls outside it.
type Range struct {
	Min     float64
	Max     float64
	Message string
}

// Contains reports whether value lies inside the inclusive range.
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Result is the outcome of validating a single value.
type Result struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

// FieldError names the field a failed validation belongs to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var ranges = map[string]Range{
	FieldHomePrice:          {Min: 1000, Max: 10000000, Message: "Home price must be between $1,000 and $10,000,000"},
	FieldPurchasePrice:      {Min: 1000, Max: 10000000, Message: "Purchase price must be between $1,000 and $10,000,000"},
	FieldLoanAmount:         {Min: 1000, Max: 10000000, Message: "Loan amount must be between $1,000 and $10,000,000"},
	FieldDownPayment:        {Min: 0, Max: 10000000, Message: "Down payment must be between $0 and $10,000,000"},
	FieldDownPaymentPercent: {Min: 0, Max: 100, Message: "Down payment percent must be between 0% and 100%"},
	FieldInterestRate:       {Min: 0, Max: 20, Message: "Interest rate must be between 0% and 20%"},
	FieldLoanTerm:           {Min: 1, Max: 40, Message: "Loan term must be between 1 and 40 years"},
	FieldPropertyTaxRate:    {Min: 0, Max: 10, Message: "Property tax rate must be between 0% and 10%"},
	FieldHomeInsurance:      {Min: 0, Max: 50000, Message: "Home insurance must be between $0 and $50,000 per year"},
	FieldHOAFees:            {Min: 0, Max: 5000, Message: "HOA fees must be between $0 and $5,000 per month"},
	FieldMonthlyIncome:      {Min: 0, Max: 1000000, Message: "Monthly income must be between $0 and $1,000,000"},
	FieldMonthlyDebts:       {Min: 0, Max: 1000000, Message: "Monthly debts must be between $0 and $1,000,000"},
	FieldHousingPayment:     {Min: 0, Max: 1000000, Message: "Housing payment must be between $0 and $1,000,000"},
	FieldTargetRatio:        {Min: 1, Max: 100, Message: "Target debt-to-income ratio must be between 1% and 100%"},
}

// RangeFor returns the validation range registered for field.
func RangeFor(field string) (Range, bool) {
	r, ok := ranges[field]
	return r, ok
}

// Ranges returns a copy of the full range table.
func Ranges() map[string]Range {
	out := make(map[string]Range, len(ranges))
	for k, v := range ranges {
		out[k] = v
	}
	return out
}

// ValidateNumericInput checks value against the sign rule and then against the
// range registered for fieldKey. Unknown field keys only get the sign and
// finiteness checks.
func ValidateNumericInput(value float64, fieldKey string) Result {
	if math.IsNaN(value) || value < 0 {
		return Result{IsValid: false, Message: MessageNegative}
	}

	r, known := ranges[fieldKey]
	if math.IsInf(value, 1) && !known {
		return Result{IsValid: false, Message: MessageInvalid}
	}
	if known && !r.Contains(value) {
		return Result{IsValid: false, Message: r.Message}
	}
	return Result{IsValid: true}
}

// Check validates value and returns a FieldError when it fails.
func Check(value float64, fieldKey string) (FieldError, bool) {
	res := ValidateNumericInput(value, fieldKey)
	if res.IsValid {
		return FieldError{}, true
	}
	return FieldError{Field: fieldKey, Message: res.Message}, false
}

// ValidateFields validates every entry of values and returns the failures
// sorted by field key, or nil when everything passed.
func ValidateFields(values map[string]float64) []FieldError {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []FieldError
	for _, k := range keys {
		if fe, ok := Check(values[k], k); !ok {
			errs = append(errs, fe)
		}
	}
	return errs
}
