package mortgage

import (
	"fmt"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given month of the schedule.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	ExtraPrincipal     float64 `json:"extraPrincipal,omitempty"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// YearSummary aggregates a schedule by loan year.
type YearSummary struct {
	Year               int     `json:"year"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// ScheduleRequest describes the loan a schedule is generated for.
type ScheduleRequest struct {
	LoanAmount            float64 `json:"loanAmount"`
	InterestRate          float64 `json:"interestRate"`
	LoanTermYears         int     `json:"loanTermYears"`
	ExtraMonthlyPrincipal float64 `json:"extraMonthlyPrincipal"`
}

// ScheduleGenerator builds month-by-month amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the amortization schedule for req. The schedule stops early
// when extra principal retires the loan before the end of the term. Loans with
// no balance or no term produce an empty schedule.
func (g *ScheduleGenerator) Generate(req ScheduleRequest) []Payment {
	balance := req.LoanAmount
	if !(balance > 0) || !mathutil.IsFinite(balance) || req.LoanTermYears <= 0 {
		return nil
	}

	termMonths := req.LoanTermYears * constants.MonthsPerYear
	rate := mathutil.NonNegative(req.InterestRate)
	monthlyPayment := ComputeMonthlyPayment(balance, rate, req.LoanTermYears)
	extra := mathutil.NonNegative(req.ExtraMonthlyPrincipal)

	schedule := make([]Payment, 0, termMonths)
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, rate)
		principal := monthlyPayment - interest

		// The final scheduled payment absorbs any rounding drift.
		if month == termMonths || principal > balance {
			principal = balance
		}

		extraPrincipal := extra
		if principal+extraPrincipal > balance {
			g.logger.Debug("capping extra principal payment to prevent overpayment",
				zap.String("op", "mortgage.Generate"),
				zap.Int("month", month),
				zap.Float64("requested", extraPrincipal),
				zap.Float64("capped_to_balance", balance-principal),
			)
			extraPrincipal = balance - principal
		}

		balance -= principal + extraPrincipal
		if mathutil.IsZero(balance) {
			// We will get machine error otherwise so just set to 0.
			balance = 0
		}

		schedule = append(schedule, Payment{
			Month:              month,
			Payment:            principal + interest + extraPrincipal,
			Principal:          principal,
			Interest:           interest,
			ExtraPrincipal:     extraPrincipal,
			RemainingPrincipal: balance,
		})

		if balance == 0 {
			if month < termMonths {
				g.logger.Debug(fmt.Sprintf("loan retired %d months early", termMonths-month),
					zap.String("op", "mortgage.Generate"),
				)
			}
			break
		}
	}

	return schedule
}

// SummarizeByYear folds a monthly schedule into loan years.
func SummarizeByYear(schedule []Payment) []YearSummary {
	var years []YearSummary
	for _, p := range schedule {
		year := (p.Month-1)/constants.MonthsPerYear + 1
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, YearSummary{Year: year})
		}
		current := &years[len(years)-1]
		current.Principal += p.Principal + p.ExtraPrincipal
		current.Interest += p.Interest
		current.RemainingPrincipal = p.RemainingPrincipal
	}
	return years
}
