// Package affordability inverts the debt-to-income limit into the most
// expensive home a borrower can carry, and checks a given price against it.
//
// Property tax depends on the home price being solved for. With the tax
// modelled as a fixed fraction of price, the monthly budget is linear in the
// price, so it is solved in closed form rather than by iteration:
//
//	B = k·(H − D) + t·H   ⇒   H = (B + k·D) / (k + t)
//
// where B is the P&I-plus-tax budget, k the payment per loan dollar, t the
// monthly tax rate and D the down payment.
package affordability

import (
	"math"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/dti"
	"github.com/iwvelando/va-loan-calculator/pkg/mathutil"
	"github.com/iwvelando/va-loan-calculator/pkg/mortgage"
)

// Inputs describe the borrower and the loan terms to solve under.
type Inputs struct {
	MonthlyIncome       float64 `json:"monthlyIncome"`
	MonthlyDebts        float64 `json:"monthlyDebts"`
	TargetBackEndRatio  float64 `json:"targetBackEndRatio"`
	InterestRate        float64 `json:"interestRate"`
	LoanTermYears       int     `json:"loanTermYears"`
	PropertyTaxRate     float64 `json:"propertyTaxRate"`
	HomeInsuranceAnnual float64 `json:"homeInsuranceAnnual"`
	HOAMonthly          float64 `json:"hoaMonthly"`
	DownPayment         float64 `json:"downPayment"`
}

// Result is the solved maximum.
type Result struct {
	MaxHousingPayment    float64 `json:"maxHousingPayment"`
	MaxHomePrice         float64 `json:"maxHomePrice"`
	LoanAmount           float64 `json:"loanAmount"`
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	PropertyTax          float64 `json:"propertyTax"`
}

// SolveMaxHomePrice solves for the maximum home price with no down payment.
func SolveMaxHomePrice(totalMonthlyIncome, totalMonthlyDebts, targetBackEndRatio, interestRate float64,
	termYears int, taxRatePercent, insuranceAnnual, hoaMonthly float64) Result {
	return Solve(Inputs{
		MonthlyIncome:       totalMonthlyIncome,
		MonthlyDebts:        totalMonthlyDebts,
		TargetBackEndRatio:  targetBackEndRatio,
		InterestRate:        interestRate,
		LoanTermYears:       termYears,
		PropertyTaxRate:     taxRatePercent,
		HomeInsuranceAnnual: insuranceAnnual,
		HOAMonthly:          hoaMonthly,
	})
}

// MaxHousingPayment is the housing budget the target ratio leaves after other
// debts, floored at zero.
func MaxHousingPayment(monthlyIncome, monthlyDebts, targetBackEndRatio float64) float64 {
	if !mathutil.IsFinite(monthlyIncome) || !mathutil.IsFinite(monthlyDebts) || !mathutil.IsFinite(targetBackEndRatio) {
		return 0
	}
	return mathutil.NonNegative(mathutil.ApplyPercentage(monthlyIncome, targetBackEndRatio) - monthlyDebts)
}

// Solve returns the highest home price whose full housing payment keeps the
// back-end ratio at the target.
func Solve(in Inputs) Result {
	maxHousing := MaxHousingPayment(in.MonthlyIncome, in.MonthlyDebts, in.TargetBackEndRatio)
	res := Result{MaxHousingPayment: maxHousing}

	budget := maxHousing - fixedMonthlyCosts(in)
	if !(budget > 0) || in.LoanTermYears <= 0 {
		return res
	}

	k := mortgage.PaymentFactor(mathutil.NonNegative(in.InterestRate), in.LoanTermYears*constants.MonthsPerYear)
	t := monthlyTaxRate(in.PropertyTaxRate)
	down := mathutil.NonNegative(in.DownPayment)
	if !mathutil.IsFinite(down) || !mathutil.IsFinite(k) || !mathutil.IsFinite(t) {
		return res
	}

	price := (budget + k*down) / (k + t)
	loan := price - down
	if loan <= 0 {
		// The down payment covers the house; only the tax is carried monthly.
		loan = 0
		price = down
		if t > 0 {
			price = math.Min(down, budget/t)
		}
	}

	res.MaxHomePrice = price
	res.LoanAmount = loan
	res.PrincipalAndInterest = k * loan
	res.PropertyTax = t * price
	return res
}

// Check is the forward affordability calculation for a specific price.
type Check struct {
	HomePrice            float64    `json:"homePrice"`
	LoanAmount           float64    `json:"loanAmount"`
	PrincipalAndInterest float64    `json:"principalAndInterest"`
	PropertyTax          float64    `json:"propertyTax"`
	HousingPayment       float64    `json:"housingPayment"`
	DTI                  dti.Result `json:"dti"`
	WithinTarget         bool       `json:"withinTarget"`
}

// CheckAffordability computes the housing payment for homePrice under in's
// terms and the back-end ratio it produces.
func CheckAffordability(in Inputs, homePrice float64) Check {
	price := mathutil.NonNegative(homePrice)
	loan := mathutil.NonNegative(price - mathutil.NonNegative(in.DownPayment))
	pi := mortgage.ComputeMonthlyPayment(loan, mathutil.NonNegative(in.InterestRate), in.LoanTermYears)
	tax := monthlyTaxRate(in.PropertyTaxRate) * price
	housing := pi + tax + fixedMonthlyCosts(in)
	ratio := dti.CalculateDTI(in.MonthlyIncome, in.MonthlyDebts, housing)

	return Check{
		HomePrice:            price,
		LoanAmount:           loan,
		PrincipalAndInterest: pi,
		PropertyTax:          tax,
		HousingPayment:       housing,
		DTI:                  ratio,
		WithinTarget:         ratio.Errors == nil && withinTarget(ratio.BackEndRatio, in.TargetBackEndRatio),
	}
}

func withinTarget(ratio, target float64) bool {
	return ratio <= target || mathutil.WithinTolerance(ratio, target, constants.RatioTolerance)
}

func fixedMonthlyCosts(in Inputs) float64 {
	return mathutil.NonNegative(in.HomeInsuranceAnnual)/constants.MonthsPerYear + mathutil.NonNegative(in.HOAMonthly)
}

func monthlyTaxRate(annualPercent float64) float64 {
	return mathutil.NonNegative(mathutil.MonthlyRate(annualPercent))
}
