// Package fundingfee looks up the VA funding fee percentage for a loan and
// applies it to the loan amount.
package fundingfee

import (
	"strings"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Purpose is the loan purpose the fee schedule is keyed by.
type Purpose int

const (
	PurposeUnknown Purpose = iota
	PurposePurchase
	PurposeRefinance
	PurposeCashOut
	PurposeIRRRL
)

func (p Purpose) String() string {
	switch p {
	case PurposePurchase:
		return "purchase"
	case PurposeRefinance:
		return "refinance"
	case PurposeCashOut:
		return "cashout"
	case PurposeIRRRL:
		return "irrrl"
	default:
		return "unknown"
	}
}

// ServiceType is the borrower's branch of service category.
type ServiceType int

const (
	ServiceUnknown ServiceType = iota
	ServiceRegular
	ServiceReserve
	ServiceNationalGuard
)

func (s ServiceType) String() string {
	switch s {
	case ServiceRegular:
		return "regular"
	case ServiceReserve:
		return "reserve"
	case ServiceNationalGuard:
		return "nationalGuard"
	default:
		return "unknown"
	}
}

func normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, "-", "")
	return strings.ReplaceAll(v, "_", "")
}

// ParsePurpose maps user-supplied text to a Purpose. Unrecognized text maps to
// PurposeUnknown, which takes the default fee branch.
func ParsePurpose(value string) Purpose {
	switch normalize(value) {
	case "purchase", "buy", "construction":
		return PurposePurchase
	case "refinance", "refi":
		return PurposeRefinance
	case "cashout", "cashoutrefinance":
		return PurposeCashOut
	case "irrrl", "streamline", "interestratereductionrefinance":
		return PurposeIRRRL
	}
	return PurposeUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (p Purpose) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails; unknown
// text decodes to PurposeUnknown.
func (p *Purpose) UnmarshalText(text []byte) error {
	*p = ParsePurpose(string(text))
	return nil
}

// ParseServiceType maps user-supplied text to a ServiceType. Unrecognized text
// maps to ServiceUnknown.
func ParseServiceType(value string) ServiceType {
	switch normalize(value) {
	case "regular", "regularmilitary", "active", "activeduty", "veteran":
		return ServiceRegular
	case "reserve", "reserves":
		return ServiceReserve
	case "nationalguard", "guard":
		return ServiceNationalGuard
	}
	return ServiceUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (s ServiceType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails; unknown
// text decodes to ServiceUnknown.
func (s *ServiceType) UnmarshalText(text []byte) error {
	*s = ParseServiceType(string(text))
	return nil
}

// tiers holds purchase rates by down payment: below 5%, 5% to below 10%, 10% and up.
type tiers [3]float64

type useRates struct {
	purchase  tiers
	refinance float64
}

type serviceRates struct {
	firstUse      useRates
	subsequentUse useRates
}

// Reserve and National Guard rates were unified with regular service in 2020;
// the table stays keyed by service type so a future divergence is a data change.
var rateTable = map[ServiceType]serviceRates{
	ServiceRegular:       currentRates,
	ServiceReserve:       currentRates,
	ServiceNationalGuard: currentRates,
}

var currentRates = serviceRates{
	firstUse: useRates{
		purchase:  tiers{2.15, 1.50, 1.25},
		refinance: 2.15,
	},
	subsequentUse: useRates{
		purchase:  tiers{3.30, 1.50, 1.25},
		refinance: 3.30,
	},
}

func tierIndex(downPaymentPercent float64) int {
	switch {
	case downPaymentPercent >= constants.LowestTierDownPaymentPercent:
		return 2
	case downPaymentPercent >= constants.MiddleTierDownPaymentPercent:
		return 1
	default:
		// NaN and negative values land here too.
		return 0
	}
}

// GetFundingFeePercentage returns the funding fee percentage for the given loan.
// Exempt borrowers pay nothing, IRRRLs pay a flat rate, and any unrecognized
// purpose or service type gets the regular service, first use, 0% down rate.
func GetFundingFeePercentage(purpose Purpose, isFirstUse bool, downPaymentPercent float64,
	serviceType ServiceType, isExempt bool) float64 {
	pct, _ := lookup(purpose, isFirstUse, downPaymentPercent, serviceType, isExempt)
	return pct
}

// lookup also reports whether the conservative default was used.
func lookup(purpose Purpose, isFirstUse bool, downPaymentPercent float64,
	serviceType ServiceType, isExempt bool) (float64, bool) {
	if isExempt {
		return 0, false
	}
	if purpose == PurposeIRRRL {
		return constants.IRRRLFundingFeePercent, false
	}

	service, ok := rateTable[serviceType]
	if !ok {
		return constants.DefaultFundingFeePercent, true
	}

	use := service.subsequentUse
	if isFirstUse {
		use = service.firstUse
	}

	switch purpose {
	case PurposePurchase:
		return use.purchase[tierIndex(downPaymentPercent)], false
	case PurposeRefinance, PurposeCashOut:
		return use.refinance, false
	}
	return constants.DefaultFundingFeePercent, true
}

// FeeAmount applies percent to loanAmount, rounded to cents. Non-positive or
// non-finite loan amounts carry no fee.
func FeeAmount(loanAmount, percent float64) float64 {
	if !(loanAmount > 0) || !(percent > 0) || !mathutil.IsFinite(loanAmount) || !mathutil.IsFinite(percent) {
		return 0
	}
	fee := decimal.NewFromFloat(loanAmount).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	return fee.InexactFloat64()
}

// Inputs are the values the funding fee depends on.
type Inputs struct {
	LoanAmount         float64     `json:"loanAmount"`
	LoanPurpose        Purpose     `json:"loanPurpose"`
	DownPaymentPercent float64     `json:"downPaymentPercent"`
	IsFirstUse         bool        `json:"isFirstUse"`
	ServiceType        ServiceType `json:"serviceType"`
	IsExempt           bool        `json:"isExempt"`
	Financed           bool        `json:"financed"`
}

// Result describes the fee and how it is paid.
type Result struct {
	Percent          float64 `json:"percent"`
	Amount           float64 `json:"amount"`
	TotalLoanWithFee float64 `json:"totalLoanWithFee"`
	DueAtClosing     float64 `json:"dueAtClosing"`
	Exempt           bool    `json:"exempt"`
	UsedDefault      bool    `json:"usedDefault"`
}

// Calculate computes the funding fee for in. When the fee is financed it is
// added to the loan; otherwise it is due at closing and the loan is unchanged.
func Calculate(in Inputs) Result {
	pct, usedDefault := lookup(in.LoanPurpose, in.IsFirstUse, in.DownPaymentPercent, in.ServiceType, in.IsExempt)
	amount := FeeAmount(in.LoanAmount, pct)

	loan := in.LoanAmount
	if !(loan > 0) || !mathutil.IsFinite(loan) {
		loan = 0
	}

	res := Result{
		Percent:          pct,
		Amount:           amount,
		TotalLoanWithFee: loan,
		Exempt:           in.IsExempt,
		UsedDefault:      usedDefault,
	}
	if in.Financed {
		res.TotalLoanWithFee = decimal.NewFromFloat(loan).Add(decimal.NewFromFloat(amount)).Round(2).InexactFloat64()
	} else {
		res.DueAtClosing = amount
	}
	return res
}
