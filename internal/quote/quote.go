// Package quote defines the data structures related to a scenario quote and
// includes functions for computing the quotes of a configuration.
package quote

import (
	"errors"
	"fmt"

	"github.com/iwvelando/va-loan-calculator/internal/config"
	"github.com/iwvelando/va-loan-calculator/pkg/affordability"
	"github.com/iwvelando/va-loan-calculator/pkg/closingcost"
	"github.com/iwvelando/va-loan-calculator/pkg/dti"
	"github.com/iwvelando/va-loan-calculator/pkg/format"
	"github.com/iwvelando/va-loan-calculator/pkg/mathutil"
	"github.com/iwvelando/va-loan-calculator/pkg/mortgage"
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

// ErrNoActiveScenarios is returned when a configuration has nothing to quote.
var ErrNoActiveScenarios = errors.New("no active scenarios")

// Quote holds every calculator result for one scenario.
type Quote struct {
	Name          string                    `json:"name"`
	Payment       mortgage.PaymentBreakdown `json:"payment"`
	DTI           dti.Result                `json:"dti"`
	ClosingCosts  closingcost.Estimate      `json:"closingCosts"`
	Affordability affordability.Result      `json:"affordability"`
	CashToClose   float64                   `json:"cashToClose"`
	Notes         []string                  `json:"notes,omitempty"`
}

// GetQuotes computes a Quote for every active scenario, in configuration order.
func GetQuotes(logger *zap.Logger, conf config.Configuration) ([]Quote, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Quote
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "quote.GetQuotes"),
			)
			continue
		}

		q, err := GetQuote(scenario)
		if err != nil {
			return results, err
		}
		logger.Debug("computed quote",
			zap.String("op", "quote.GetQuotes"),
			zap.String("scenario", q.Name),
			zap.Float64("totalMonthlyPayment", q.Payment.TotalMonthlyPayment),
			zap.Float64("backEndRatio", q.DTI.BackEndRatio),
		)
		results = append(results, q)
	}

	if len(results) == 0 {
		return nil, ErrNoActiveScenarios
	}
	return results, nil
}

// GetQuote runs every calculator for a single scenario. It fails only when the
// scenario lacks a usable home price or loan term.
func GetQuote(scenario config.Scenario) (Quote, error) {
	if fe, ok := validation.Check(scenario.Loan.HomePrice, validation.FieldHomePrice); !ok {
		return Quote{}, fmt.Errorf("scenario %q: %w", scenario.Name, fe)
	}
	if fe, ok := validation.Check(float64(scenario.Loan.LoanTermYears), validation.FieldLoanTerm); !ok {
		return Quote{}, fmt.Errorf("scenario %q: %w", scenario.Name, fe)
	}

	payment := mortgage.Calculate(scenario.Loan,
		mortgage.WithFundingFeeTerms(scenario.FundingFee.Purpose(), scenario.FundingFee.Service()))

	borrower := scenario.Borrower
	ratios := dti.CalculateDTI(borrower.MonthlyGrossIncome, borrower.MonthlyOtherDebts, payment.TotalMonthlyPayment)
	closing := closingcost.CalculateEstimatedClosingCosts(payment.HomePrice, payment.LoanAmount)

	target := borrower.TargetRatio()
	afford := affordability.Solve(affordability.Inputs{
		MonthlyIncome:       borrower.MonthlyGrossIncome,
		MonthlyDebts:        borrower.MonthlyOtherDebts,
		TargetBackEndRatio:  target,
		InterestRate:        scenario.Loan.InterestRate,
		LoanTermYears:       scenario.Loan.LoanTermYears,
		PropertyTaxRate:     scenario.Loan.PropertyTaxRate,
		HomeInsuranceAnnual: scenario.Loan.HomeInsuranceAnnual,
		HOAMonthly:          scenario.Loan.HOAMonthly,
		DownPayment:         payment.DownPayment,
	})

	q := Quote{
		Name:          scenario.Name,
		Payment:       payment,
		DTI:           ratios,
		ClosingCosts:  closing,
		Affordability: afford,
		CashToClose:   mathutil.Round(payment.DownPayment + payment.FundingFee.DueAtClosing + closing.Total),
	}
	q.Notes = notes(q, target)
	return q, nil
}

func notes(q Quote, target float64) []string {
	var out []string

	if q.Payment.FundingFee.Exempt {
		out = append(out, "funding fee waived for service-connected disability")
	}
	if q.Payment.FundingFee.DueAtClosing > 0 {
		out = append(out, fmt.Sprintf("funding fee of %s is due at closing",
			format.Currency(q.Payment.FundingFee.DueAtClosing)))
	}
	if q.Payment.FundingFee.UsedDefault {
		out = append(out, fmt.Sprintf("funding fee terms not recognized, default of %s applied",
			format.Percent(q.Payment.FundingFee.Percent, 2)))
	}
	for _, fe := range q.DTI.Errors {
		out = append(out, "DTI: "+fe.Message)
	}
	if q.DTI.Errors == nil && !q.DTI.Qualified {
		out = append(out, fmt.Sprintf("back-end ratio of %s exceeds the qualifying limit",
			format.Percent(q.DTI.BackEndDisplay(), 1)))
	}
	for _, fe := range q.ClosingCosts.Errors {
		out = append(out, "closing costs: "+fe.Message)
	}
	if q.DTI.Errors == nil && q.Affordability.MaxHomePrice < q.Payment.HomePrice {
		out = append(out, fmt.Sprintf("home price is above the %s maximum affordable at a %s back-end ratio",
			format.WholeCurrency(q.Affordability.MaxHomePrice), format.Percent(target, 0)))
	}

	return out
}
