// Package format renders currency and percentage values for display.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the way US dollar amounts are written.
var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return signed(amount, 2)
}

// WholeCurrency is Currency without cents, as used in validation messages (e.g., "$10,000,000").
func WholeCurrency(amount float64) string {
	return signed(amount, 0)
}

// Percent returns a percentage with the given number of decimals (e.g., "32.5%").
func Percent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

func signed(amount float64, decimals int) string {
	verb := fmt.Sprintf("%%.%df", decimals)
	formatted := printer.Sprintf(verb, math.Abs(amount))
	if amount < 0 && formatted != printer.Sprintf(verb, 0.0) {
		return "-$" + formatted
	}
	return "$" + formatted
}
