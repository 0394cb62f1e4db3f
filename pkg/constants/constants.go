// Package constants provides shared constants for the va-loan-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// RatioPrecision is the precision for displayed ratios (1 decimal place)
	RatioPrecision = 10

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RatioTolerance is the slack, in percentage points, allowed when a ratio
	// is compared against a target (half of one displayed decimal)
	RatioTolerance = 0.05
)

// Loan term constants
const (
	// TermFifteenYears is the short VA purchase term offered by the calculators
	TermFifteenYears = 15

	// TermThirtyYears is the default VA purchase term
	TermThirtyYears = 30
)

// Funding fee constants
const (
	// IRRRLFundingFeePercent is the flat funding fee for streamline refinances
	IRRRLFundingFeePercent = 0.5

	// DefaultFundingFeePercent is the conservative fallback rate: regular
	// service, first use, less than 5% down.
	DefaultFundingFeePercent = 2.15

	// MiddleTierDownPaymentPercent is where the middle funding fee tier starts
	MiddleTierDownPaymentPercent = 5.0

	// LowestTierDownPaymentPercent is where the lowest funding fee tier starts
	LowestTierDownPaymentPercent = 10.0
)

// DTI constants
const (
	// MaxQualifyingBackEndRatio is the highest back-end ratio still treated as qualified
	MaxQualifyingBackEndRatio = 50.0

	// DefaultTargetBackEndRatio is the VA residual-income guideline ratio
	DefaultTargetBackEndRatio = 41.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the calculator API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
