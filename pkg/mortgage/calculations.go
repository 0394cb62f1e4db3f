// Package mortgage provides fixed-rate mortgage payment calculations.
package mortgage

import (
	"math"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/fundingfee"
	"github.com/iwvelando/va-loan-calculator/pkg/mathutil"
)

// PaymentFactor returns the monthly payment owed per dollar borrowed for the
// given annual rate and term in months. A zero (or negative) rate amortizes
// linearly.
func PaymentFactor(annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	n := float64(termMonths)
	periodicInterestRate := mathutil.MonthlyRate(annualRatePercent)
	if !(periodicInterestRate > 0) {
		return 1 / n
	}

	// r(1+r)^n / ((1+r)^n - 1) rewritten as r + r/((1+r)^n - 1), with the
	// growth term taken through Expm1/Log1p so tiny rates keep their precision.
	growth := math.Expm1(n * math.Log1p(periodicInterestRate))
	if !(growth > 0) {
		return 1 / n
	}
	if math.IsInf(growth, 1) {
		return periodicInterestRate
	}
	return periodicInterestRate + periodicInterestRate/growth
}

// ComputeMonthlyPayment calculates the monthly principal and interest payment
// for a loan using the standard amortization formula.
func ComputeMonthlyPayment(loanAmount, annualRatePercent float64, termYears int) float64 {
	if !(loanAmount > 0) || termYears <= 0 {
		return 0
	}
	return loanAmount * PaymentFactor(annualRatePercent, termYears*constants.MonthsPerYear)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * mathutil.NonNegative(mathutil.MonthlyRate(annualRatePercent))
}

// LifetimeInterest is the total interest paid over the full term.
func LifetimeInterest(loanAmount, annualRatePercent float64, termYears int) float64 {
	if !(loanAmount > 0) || termYears <= 0 {
		return 0
	}
	n := float64(termYears * constants.MonthsPerYear)
	return ComputeMonthlyPayment(loanAmount, annualRatePercent, termYears)*n - loanAmount
}

// LoanInputs holds the purchase calculator's form values.
type LoanInputs struct {
	HomePrice            float64 `json:"homePrice" mapstructure:"homePrice"`
	DownPayment          float64 `json:"downPayment" mapstructure:"downPayment"`
	DownPaymentIsPercent bool    `json:"downPaymentIsPercent" mapstructure:"downPaymentIsPercent"`
	LoanTermYears        int     `json:"loanTermYears" mapstructure:"loanTermYears"`
	InterestRate         float64 `json:"interestRate" mapstructure:"interestRate"`
	PropertyTaxRate      float64 `json:"propertyTaxRate" mapstructure:"propertyTaxRate"`
	HomeInsuranceAnnual  float64 `json:"homeInsuranceAnnual" mapstructure:"homeInsuranceAnnual"`
	HOAMonthly           float64 `json:"hoaMonthly" mapstructure:"hoaMonthly"`
	IncludeFundingFee    bool    `json:"includeFundingFee" mapstructure:"includeFundingFee"`
	IsFirstTimeUse       bool    `json:"isFirstTimeUse" mapstructure:"isFirstTimeUse"`
	HasDisabilityRating  bool    `json:"hasDisabilityRating" mapstructure:"hasDisabilityRating"`
}

// ResolveDownPayment returns the down payment as an amount, clamped to
// [0, HomePrice].
func (in LoanInputs) ResolveDownPayment() float64 {
	price := mathutil.NonNegative(in.HomePrice)
	down := mathutil.NonNegative(in.DownPayment)
	if in.DownPaymentIsPercent {
		down = mathutil.ApplyPercentage(price, down)
	}
	return math.Min(down, price)
}

// PaymentBreakdown is the full monthly payment picture for a purchase.
type PaymentBreakdown struct {
	HomePrice            float64           `json:"homePrice"`
	DownPayment          float64           `json:"downPayment"`
	DownPaymentPercent   float64           `json:"downPaymentPercent"`
	BaseLoanAmount       float64           `json:"baseLoanAmount"`
	FundingFee           fundingfee.Result `json:"fundingFee"`
	LoanAmount           float64           `json:"loanAmount"`
	TermMonths           int               `json:"termMonths"`
	PrincipalAndInterest float64           `json:"principalAndInterest"`
	PropertyTax          float64           `json:"propertyTax"`
	HomeInsurance        float64           `json:"homeInsurance"`
	HOA                  float64           `json:"hoa"`
	TotalMonthlyPayment  float64           `json:"totalMonthlyPayment"`
	LifetimeInterest     float64           `json:"lifetimeInterest"`
	TotalOfPayments      float64           `json:"totalOfPayments"`
}

// Option adjusts how Calculate prices the funding fee.
type Option func(*options)

type options struct {
	purpose fundingfee.Purpose
	service fundingfee.ServiceType
}

// WithFundingFeeTerms prices the funding fee for the given loan purpose and
// service type instead of a regular-service purchase.
func WithFundingFeeTerms(purpose fundingfee.Purpose, service fundingfee.ServiceType) Option {
	return func(o *options) {
		o.purpose = purpose
		o.service = service
	}
}

// Calculate computes the total monthly payment for in. A financed funding fee
// is added to the loan principal before P&I is computed; otherwise it is
// reported as due at closing.
func Calculate(in LoanInputs, opts ...Option) PaymentBreakdown {
	o := options{purpose: fundingfee.PurposePurchase, service: fundingfee.ServiceRegular}
	for _, opt := range opts {
		opt(&o)
	}

	price := mathutil.NonNegative(in.HomePrice)
	down := in.ResolveDownPayment()
	base := price - down
	rate := mathutil.NonNegative(in.InterestRate)

	fee := fundingfee.Calculate(fundingfee.Inputs{
		LoanAmount:         base,
		LoanPurpose:        o.purpose,
		DownPaymentPercent: mathutil.CalculatePercentage(down, price),
		IsFirstUse:         in.IsFirstTimeUse,
		ServiceType:        o.service,
		IsExempt:           in.HasDisabilityRating,
		Financed:           in.IncludeFundingFee,
	})
	loan := fee.TotalLoanWithFee

	pi := ComputeMonthlyPayment(loan, rate, in.LoanTermYears)
	tax := mathutil.ApplyPercentage(price, mathutil.NonNegative(in.PropertyTaxRate)) / constants.MonthsPerYear
	insurance := mathutil.NonNegative(in.HomeInsuranceAnnual) / constants.MonthsPerYear
	hoa := mathutil.NonNegative(in.HOAMonthly)

	termMonths := 0
	if in.LoanTermYears > 0 {
		termMonths = in.LoanTermYears * constants.MonthsPerYear
	}

	return PaymentBreakdown{
		HomePrice:            price,
		DownPayment:          down,
		DownPaymentPercent:   mathutil.CalculatePercentage(down, price),
		BaseLoanAmount:       base,
		FundingFee:           fee,
		LoanAmount:           loan,
		TermMonths:           termMonths,
		PrincipalAndInterest: pi,
		PropertyTax:          tax,
		HomeInsurance:        insurance,
		HOA:                  hoa,
		TotalMonthlyPayment:  pi + tax + insurance + hoa,
		LifetimeInterest:     LifetimeInterest(loan, rate, in.LoanTermYears),
		TotalOfPayments:      pi * float64(termMonths),
	}
}
