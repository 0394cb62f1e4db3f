package config

import (
	"fmt"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/fundingfee"
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns human-readable warnings. An empty result means no problems were found.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "no active scenarios configured")
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
			warnings = append(warnings, fmt.Sprintf("%s: missing name", name))
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("scenario %q: duplicate name", name))
		}
		seen[name] = true

		warnings = append(warnings, s.warnings(name)...)
	}

	return warnings
}

func (s Scenario) warnings(name string) []string {
	var warnings []string

	values := map[string]float64{
		validation.FieldHomePrice:       s.Loan.HomePrice,
		validation.FieldInterestRate:    s.Loan.InterestRate,
		validation.FieldLoanTerm:        float64(s.Loan.LoanTermYears),
		validation.FieldPropertyTaxRate: s.Loan.PropertyTaxRate,
		validation.FieldHomeInsurance:   s.Loan.HomeInsuranceAnnual,
		validation.FieldHOAFees:         s.Loan.HOAMonthly,
		validation.FieldMonthlyIncome:   s.Borrower.MonthlyGrossIncome,
		validation.FieldMonthlyDebts:    s.Borrower.MonthlyOtherDebts,
	}
	if s.Loan.DownPaymentIsPercent {
		values[validation.FieldDownPaymentPercent] = s.Loan.DownPayment
	} else {
		values[validation.FieldDownPayment] = s.Loan.DownPayment
	}
	if s.Borrower.TargetBackEndRatio != 0 {
		values[validation.FieldTargetRatio] = s.Borrower.TargetBackEndRatio
	}

	for _, fe := range validation.ValidateFields(values) {
		warnings = append(warnings, fmt.Sprintf("scenario %q: %s: %s", name, fe.Field, fe.Message))
	}

	if term := s.Loan.LoanTermYears; term != constants.TermFifteenYears && term != constants.TermThirtyYears {
		warnings = append(warnings, fmt.Sprintf("scenario %q: loan term of %d years is not a standard VA term (%d or %d)",
			name, term, constants.TermFifteenYears, constants.TermThirtyYears))
	}

	if !s.Loan.DownPaymentIsPercent && s.Loan.DownPayment > s.Loan.HomePrice {
		warnings = append(warnings, fmt.Sprintf("scenario %q: down payment exceeds home price and will be capped", name))
	}

	if s.FundingFee.Purpose() == fundingfee.PurposeUnknown {
		warnings = append(warnings, fmt.Sprintf("scenario %q: unknown loan purpose %q, default funding fee applies",
			name, s.FundingFee.LoanPurpose))
	}
	if s.FundingFee.Service() == fundingfee.ServiceUnknown {
		warnings = append(warnings, fmt.Sprintf("scenario %q: unknown service type %q, default funding fee applies",
			name, s.FundingFee.ServiceType))
	}

	if s.Borrower.MonthlyGrossIncome <= 0 {
		warnings = append(warnings, fmt.Sprintf("scenario %q: monthly gross income is required for DTI and affordability", name))
	}

	return warnings
}
