package mortgage

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

// Published amortization for $175,000 at 4.5% over 30 years.
var referenceRows = []struct {
	month     int
	principal float64
	interest  float64
	balance   float64
}{
	{1, 230.45, 656.25, 174769.55},
	{12, 0, 0, 172176.85},
	{120, 0, 0, 140156.51},
	{360, 0, 0, 0},
}

func TestGenerateMatchesReferenceSchedule(t *testing.T) {
	const tolerance = 0.50

	schedule := NewScheduleGenerator(zap.NewNop()).Generate(ScheduleRequest{
		LoanAmount:    175000,
		InterestRate:  4.5,
		LoanTermYears: 30,
	})
	if len(schedule) != 360 {
		t.Fatalf("expected 360 payments, got %d", len(schedule))
	}
	if math.Abs(schedule[0].Payment-886.70) > tolerance {
		t.Errorf("monthly payment = %.2f, expected 886.70", schedule[0].Payment)
	}

	for _, ref := range referenceRows {
		p := schedule[ref.month-1]
		if p.Month != ref.month {
			t.Fatalf("row %d has month %d", ref.month-1, p.Month)
		}
		if ref.principal > 0 && math.Abs(p.Principal-ref.principal) > tolerance {
			t.Errorf("month %d principal = %.2f, expected %.2f", ref.month, p.Principal, ref.principal)
		}
		if ref.interest > 0 && math.Abs(p.Interest-ref.interest) > tolerance {
			t.Errorf("month %d interest = %.2f, expected %.2f", ref.month, p.Interest, ref.interest)
		}
		if math.Abs(p.RemainingPrincipal-ref.balance) > tolerance {
			t.Errorf("month %d balance = %.2f, expected %.2f", ref.month, p.RemainingPrincipal, ref.balance)
		}
	}
}
