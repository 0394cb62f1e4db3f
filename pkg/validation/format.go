package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
)

// ValidateOutputFormat checks if the quote output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("expected output format of %s or %s, got %q",
		constants.OutputFormatPretty, constants.OutputFormatCSV, format)
}
