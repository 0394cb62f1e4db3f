package closingcost

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEstimatedClosingCostsInvalidInputs(t *testing.T) {
	est := CalculateEstimatedClosingCosts(500, 500)

	assert.Equal(t, 0.0, est.Total)
	assert.NotNil(t, est.Breakdown)
	assert.Empty(t, est.Breakdown)
	require.Len(t, est.Errors, 2)
	assert.Equal(t, validation.FieldPurchasePrice, est.Errors[0].Field)
	assert.Equal(t, validation.FieldLoanAmount, est.Errors[1].Field)
}

func TestCalculateEstimatedClosingCostsOneInvalidInput(t *testing.T) {
	est := CalculateEstimatedClosingCosts(400000, -1)

	assert.Equal(t, 0.0, est.Total)
	assert.Empty(t, est.Breakdown)
	require.Len(t, est.Errors, 1)
	assert.Equal(t, validation.MessageNegative, est.Errors[0].Message)
}

func TestCalculateEstimatedClosingCosts(t *testing.T) {
	est := CalculateEstimatedClosingCosts(400000, 400000)

	assert.Nil(t, est.Errors)
	require.Len(t, est.Breakdown, len(DefaultSchedule().Categories))
	require.Len(t, est.Breakdown, 4)
	assert.Greater(t, est.Total, 0.0)
	assert.Equal(t, 12205.0, est.Total)

	want := []CategoryCost{
		{Category: "Lender Fees", Total: 4065, Items: []ItemCost{
			{Name: "Origination Fee", Amount: 4000},
			{Name: "Credit Report", Amount: 65},
		}},
		{Category: "Third-Party Services", Total: 3552.5, Items: []ItemCost{
			{Name: "VA Appraisal", Amount: 712.5},
			{Name: "Lender's Title Insurance", Amount: 2000},
			{Name: "Title Search", Amount: 300},
			{Name: "Survey", Amount: 525},
			{Name: "Flood Determination", Amount: 15},
		}},
		{Category: "Government Recording", Total: 587.5, Items: []ItemCost{
			{Name: "Deed and Mortgage Recording", Amount: 187.5},
			{Name: "Mortgage Recording Tax", Amount: 400},
		}},
		{Category: "Prepaids & Escrow", Total: 4000, Items: []ItemCost{
			{Name: "Prepaid Interest", Amount: 1000},
			{Name: "Homeowners Insurance Premium", Amount: 1800},
			{Name: "Property Tax Escrow", Amount: 1200},
		}},
	}
	if diff := cmp.Diff(want, est.Breakdown); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryTotalsSumToGrandTotal(t *testing.T) {
	est := CalculateEstimatedClosingCosts(612345.67, 598765.43)
	require.Nil(t, est.Errors)

	grand := decimal.Zero
	for _, c := range est.Breakdown {
		items := decimal.Zero
		for _, i := range c.Items {
			items = items.Add(decimal.NewFromFloat(i.Amount))
		}
		assert.True(t, items.Equal(decimal.NewFromFloat(c.Total)), c.Category)
		grand = grand.Add(decimal.NewFromFloat(c.Total))
	}
	assert.True(t, grand.Equal(decimal.NewFromFloat(est.Total)))
}

func TestEstimateIsIdempotent(t *testing.T) {
	assert.Equal(t, CalculateEstimatedClosingCosts(350000, 343000), CalculateEstimatedClosingCosts(350000, 343000))
}

func TestDefaultScheduleHasNoProhibitedFees(t *testing.T) {
	for _, c := range DefaultSchedule().Categories {
		for _, item := range c.Items {
			name := strings.ToLower(c.Name + " " + item.Name)
			for _, term := range []string{"attorney", "broker", "commission", "prepayment"} {
				assert.NotContains(t, name, term)
			}
		}
	}
}

func TestNewScheduleRejectsProhibitedFees(t *testing.T) {
	_, err := NewSchedule("test", []Category{{
		Name:  "Lender Fees",
		Items: []Item{Flat("Attorney Fees", 750)},
	}})
	assert.True(t, errors.Is(err, ErrProhibitedFee))

	_, err = NewSchedule("test", []Category{{
		Name:  "Real Estate Brokerage",
		Items: []Item{PercentOfLoan("Buyer Side", 0.03)},
	}})
	assert.True(t, errors.Is(err, ErrProhibitedFee))
}

func TestNewScheduleRejectsMalformedItems(t *testing.T) {
	bad := []Item{
		Flat("Negative", -1),
		Between("Inverted", 500, 100),
		PercentOfLoan("Too much", 1.5),
		{Name: "Mystery", Kind: Kind(9)},
	}
	for _, item := range bad {
		_, err := NewSchedule("test", []Category{{Name: "Fees", Items: []Item{item}}})
		assert.True(t, errors.Is(err, ErrInvalidItem), item.Name)
	}
}

func TestCustomSchedule(t *testing.T) {
	s, err := NewSchedule("custom", []Category{{
		Name:  "Only",
		Items: []Item{Flat("Doc Prep", 100), Between("Courier", 20, 40), PercentOfLoan("Points", 0.02)},
	}})
	require.NoError(t, err)

	est := s.Estimate(200000, 100000)
	require.Nil(t, est.Errors)
	assert.Equal(t, 2130.0, est.Total)
}

func TestDefaultScheduleIsCopied(t *testing.T) {
	s := DefaultSchedule()
	s.Categories[0].Items[0].Rate = 0.5
	s.Categories = s.Categories[:1]

	fresh := DefaultSchedule()
	assert.Len(t, fresh.Categories, 4)
	assert.Equal(t, 0.01, fresh.Categories[0].Items[0].Rate)
	assert.Equal(t, DefaultScheduleVersion, fresh.Version)
}
