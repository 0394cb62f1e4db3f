// Package output provides utilities for formatting and displaying quote results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/va-loan-calculator/internal/quote"
	"github.com/iwvelando/va-loan-calculator/pkg/format"
)

// CsvHeader lists the CSV columns, one row per scenario.
var CsvHeader = []string{
	"scenario", "home price", "down payment", "loan amount", "funding fee percent", "funding fee",
	"principal and interest", "property tax", "home insurance", "hoa", "total monthly payment",
	"front-end ratio", "back-end ratio", "rating", "qualified", "closing costs", "cash to close",
	"max home price", "notes",
}

// WritePretty writes the human-readable report to w.
func WritePretty(w io.Writer, results []quote.Quote) {
	for i, result := range results {
		pay := result.Payment
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		_, _ = fmt.Fprintf(w, "Home price             | %s\n", format.Currency(pay.HomePrice))
		_, _ = fmt.Fprintf(w, "Down payment           | %s (%s)\n", format.Currency(pay.DownPayment), format.Percent(pay.DownPaymentPercent, 2))
		_, _ = fmt.Fprintf(w, "Funding fee            | %s (%s)\n", format.Currency(pay.FundingFee.Amount), format.Percent(pay.FundingFee.Percent, 2))
		_, _ = fmt.Fprintf(w, "Loan amount            | %s\n", format.Currency(pay.LoanAmount))
		_, _ = fmt.Fprintf(w, "Principal & interest   | %s\n", format.Currency(pay.PrincipalAndInterest))
		_, _ = fmt.Fprintf(w, "Property tax           | %s\n", format.Currency(pay.PropertyTax))
		_, _ = fmt.Fprintf(w, "Home insurance         | %s\n", format.Currency(pay.HomeInsurance))
		_, _ = fmt.Fprintf(w, "HOA                    | %s\n", format.Currency(pay.HOA))
		_, _ = fmt.Fprintf(w, "Total monthly payment  | %s\n", format.Currency(pay.TotalMonthlyPayment))
		_, _ = fmt.Fprintf(w, "Lifetime interest      | %s\n", format.Currency(pay.LifetimeInterest))
		_, _ = fmt.Fprintf(w, "Debt-to-income         | %s front / %s back (%s)\n",
			format.Percent(result.DTI.FrontEndDisplay(), 1), format.Percent(result.DTI.BackEndDisplay(), 1), result.DTI.Rating)
		_, _ = fmt.Fprintf(w, "Closing costs          | %s\n", format.Currency(result.ClosingCosts.Total))
		_, _ = fmt.Fprintf(w, "Cash to close          | %s\n", format.Currency(result.CashToClose))
		_, _ = fmt.Fprintf(w, "Max affordable price   | %s\n", format.Currency(result.Affordability.MaxHomePrice))
		for _, note := range result.Notes {
			_, _ = fmt.Fprintf(w, "Note: %s\n", note)
		}
		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// WriteCSV writes results to w as CSV with a header row.
func WriteCSV(w io.Writer, results []quote.Quote) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CsvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(csvRecord(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for scenario %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// CsvString renders results as CSV with a header row.
func CsvString(results []quote.Quote) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func csvRecord(r quote.Quote) []string {
	pay := r.Payment
	return []string{
		r.Name,
		money(pay.HomePrice),
		money(pay.DownPayment),
		money(pay.LoanAmount),
		money(pay.FundingFee.Percent),
		money(pay.FundingFee.Amount),
		money(pay.PrincipalAndInterest),
		money(pay.PropertyTax),
		money(pay.HomeInsurance),
		money(pay.HOA),
		money(pay.TotalMonthlyPayment),
		strconv.FormatFloat(r.DTI.FrontEndDisplay(), 'f', 1, 64),
		strconv.FormatFloat(r.DTI.BackEndDisplay(), 'f', 1, 64),
		r.DTI.Rating,
		strconv.FormatBool(r.DTI.Qualified),
		money(r.ClosingCosts.Total),
		money(r.CashToClose),
		money(r.Affordability.MaxHomePrice),
		strings.Join(r.Notes, "; "),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
