package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNumericInput(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		field   string
		valid   bool
		message string
	}{
		{"In range purchase price", 400000, FieldPurchasePrice, true, ""},
		{"Lower bound inclusive", 1000, FieldPurchasePrice, true, ""},
		{"Upper bound inclusive", 10000000, FieldLoanAmount, true, ""},
		{"Below minimum", 500, FieldPurchasePrice, false, "Purchase price must be between $1,000 and $10,000,000"},
		{"Above maximum", 10000001, FieldLoanAmount, false, "Loan amount must be between $1,000 and $10,000,000"},
		{"Negative beats range message", -5, FieldPurchasePrice, false, MessageNegative},
		{"NaN reported as negative", math.NaN(), FieldInterestRate, false, MessageNegative},
		{"Negative infinity", math.Inf(-1), FieldHOAFees, false, MessageNegative},
		{"Positive infinity on known field", math.Inf(1), FieldInterestRate, false, "Interest rate must be between 0% and 20%"},
		{"Positive infinity on unknown field", math.Inf(1), "creditScore", false, MessageInvalid},
		{"Unknown field non-negative", 42, "creditScore", true, ""},
		{"Zero interest allowed", 0, FieldInterestRate, true, ""},
		{"Term too long", 50, FieldLoanTerm, false, "Loan term must be between 1 and 40 years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateNumericInput(tt.value, tt.field)
			assert.Equal(t, tt.valid, res.IsValid)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestRangeTableCoversEveryField(t *testing.T) {
	fields := []string{
		FieldHomePrice, FieldPurchasePrice, FieldLoanAmount, FieldDownPayment,
		FieldDownPaymentPercent, FieldInterestRate, FieldLoanTerm, FieldPropertyTaxRate,
		FieldHomeInsurance, FieldHOAFees, FieldMonthlyIncome, FieldMonthlyDebts,
		FieldHousingPayment, FieldTargetRatio,
	}
	for _, f := range fields {
		r, ok := RangeFor(f)
		require.True(t, ok, "missing range for %s", f)
		assert.LessOrEqual(t, r.Min, r.Max, f)
		assert.NotEmpty(t, r.Message, f)
	}
}

func TestRangesReturnsCopy(t *testing.T) {
	table := Ranges()
	table[FieldLoanAmount] = Range{Min: 0, Max: 1}

	r, ok := RangeFor(FieldLoanAmount)
	require.True(t, ok)
	assert.Equal(t, 1000.0, r.Min)
	assert.Equal(t, 10000000.0, r.Max)
}

func TestValidateFields(t *testing.T) {
	errs := ValidateFields(map[string]float64{
		FieldPurchasePrice: 500,
		FieldLoanAmount:    500,
		FieldInterestRate:  6.5,
	})

	require.Len(t, errs, 2)
	assert.Equal(t, FieldLoanAmount, errs[0].Field)
	assert.Equal(t, FieldPurchasePrice, errs[1].Field)
	assert.Equal(t, "loanAmount: Loan amount must be between $1,000 and $10,000,000", errs[0].Error())

	assert.Nil(t, ValidateFields(map[string]float64{FieldInterestRate: 6.5}))
}

func TestValidatorsAreTotal(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1, 0, 1e300}
	for _, v := range values {
		for field := range Ranges() {
			res := ValidateNumericInput(v, field)
			if !res.IsValid {
				assert.NotEmpty(t, res.Message)
			}
		}
	}
}
