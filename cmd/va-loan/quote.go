package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/va-loan-calculator/internal/config"
	"github.com/iwvelando/va-loan-calculator/internal/quote"
	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/output"
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	quoteConfigPath   string
	quoteOutputFormat string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote every active scenario in a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteConfigPath, "config", constants.DefaultConfigFile, "path to configuration file")
	quoteCmd.Flags().StringVar(&quoteOutputFormat, "output-format", "", "type of output override: pretty, csv")
}

func runQuote(cmd *cobra.Command, _ []string) error {
	conf, err := config.LoadConfiguration(quoteConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", quoteConfigPath, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	return writeQuotes(cmd.OutOrStdout(), logger, conf, quoteOutputFormat)
}

// writeQuotes validates conf, computes its quotes and renders them to w in
// the configured format, with formatOverride taking precedence.
func writeQuotes(w io.Writer, logger *zap.Logger, conf *config.Configuration, formatOverride string) error {
	outputFormat := conf.Output.Format
	if formatOverride != "" {
		outputFormat = formatOverride
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.writeQuotes"),
		)
	}

	results, err := quote.GetQuotes(logger, *conf)
	if err != nil {
		logger.Error("failed to compute quotes",
			zap.String("op", "main.writeQuotes"),
			zap.Error(err),
		)
		return fmt.Errorf("failed to compute quotes: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(outputFormat)) {
	case constants.OutputFormatPretty:
		output.WritePretty(w, results)
	case constants.OutputFormatCSV:
		err = output.WriteCSV(w, results)
	}
	return err
}
