// Package dti computes debt-to-income ratios and classifies the back-end ratio
// into rating bands.
package dti

import (
	"math"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/mathutil"
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
)

// MessageIncomeRequired is reported when income is missing, zero or negative.
const MessageIncomeRequired = "Monthly income must be greater than zero"

// Inputs are the monthly figures the ratios are computed from.
type Inputs struct {
	MonthlyGrossIncome     float64 `json:"monthlyGrossIncome"`
	MonthlyOtherDebts      float64 `json:"monthlyOtherDebts"`
	ProposedHousingPayment float64 `json:"proposedHousingPayment"`
}

// Result holds both ratios at full precision and the rating of the back-end ratio.
type Result struct {
	FrontEndRatio float64                 `json:"frontEndRatio"`
	BackEndRatio  float64                 `json:"backEndRatio"`
	Rating        string                  `json:"rating"`
	Color         Color                   `json:"color"`
	Qualified     bool                    `json:"qualified"`
	Errors        []validation.FieldError `json:"errors,omitempty"`
}

// FrontEndDisplay is the front-end ratio rounded to one decimal.
func (r Result) FrontEndDisplay() float64 {
	return mathutil.RoundRatio(r.FrontEndRatio)
}

// BackEndDisplay is the back-end ratio rounded to one decimal.
func (r Result) BackEndDisplay() float64 {
	return mathutil.RoundRatio(r.BackEndRatio)
}

// Style is the presentation bundle for the result's color.
func (r Result) Style() Style {
	return StyleFor(r.Color)
}

// CalculateDTI computes front-end (housing only) and back-end (all debts)
// ratios as percentages of income. Income at or below zero, or unusable debt
// figures, yield the Error result with zero ratios instead of NaN or Inf.
func CalculateDTI(monthlyIncome, monthlyDebts, proposedHousingPayment float64) Result {
	var errs []validation.FieldError
	if math.IsNaN(monthlyIncome) || monthlyIncome <= 0 || math.IsInf(monthlyIncome, 1) {
		errs = append(errs, validation.FieldError{Field: validation.FieldMonthlyIncome, Message: MessageIncomeRequired})
	}
	if fe, ok := checkFinite(monthlyDebts, validation.FieldMonthlyDebts); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkFinite(proposedHousingPayment, validation.FieldHousingPayment); !ok {
		errs = append(errs, fe)
	}
	if len(errs) > 0 {
		return errorResult(errs)
	}

	front := proposedHousingPayment / monthlyIncome * constants.PercentageMultiplier
	back := (monthlyDebts + proposedHousingPayment) / monthlyIncome * constants.PercentageMultiplier
	band := Classify(back)

	return Result{
		FrontEndRatio: front,
		BackEndRatio:  back,
		Rating:        band.Label,
		Color:         band.Color,
		Qualified:     back <= constants.MaxQualifyingBackEndRatio,
	}
}

// Calculate is CalculateDTI over an Inputs record.
func Calculate(in Inputs) Result {
	return CalculateDTI(in.MonthlyGrossIncome, in.MonthlyOtherDebts, in.ProposedHousingPayment)
}

// checkFinite applies the sign rule only; debt amounts have no upper range here.
func checkFinite(value float64, field string) (validation.FieldError, bool) {
	if math.IsInf(value, 1) {
		return validation.FieldError{Field: field, Message: validation.MessageInvalid}, false
	}
	res := validation.ValidateNumericInput(value, "")
	if !res.IsValid {
		return validation.FieldError{Field: field, Message: res.Message}, false
	}
	return validation.FieldError{}, true
}

func errorResult(errs []validation.FieldError) Result {
	return Result{
		Rating:    LabelError,
		Color:     ColorRed,
		Qualified: false,
		Errors:    errs,
	}
}
