// Package config defines the data structures related to configuration and
// includes functions for loading and validating the scenario config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/fundingfee"
	"github.com/iwvelando/va-loan-calculator/pkg/mortgage"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a quote run.
type Configuration struct {
	Scenarios []Scenario    `yaml:"scenarios" json:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv
}

// Scenario is one home purchase to quote.
type Scenario struct {
	Name       string              `json:"name"`
	Active     bool                `json:"active"`
	Loan       mortgage.LoanInputs `json:"loan"`
	FundingFee FundingFee          `json:"fundingFee"`
	Borrower   Borrower            `json:"borrower"`
}

// FundingFee selects the funding fee table row. Values are free text and are
// parsed with fundingfee.ParsePurpose and fundingfee.ParseServiceType.
type FundingFee struct {
	LoanPurpose string `json:"loanPurpose" mapstructure:"loanPurpose"`
	ServiceType string `json:"serviceType" mapstructure:"serviceType"`
}

// Purpose returns the parsed loan purpose, defaulting to purchase when unset.
func (f FundingFee) Purpose() fundingfee.Purpose {
	if f.LoanPurpose == "" {
		return fundingfee.PurposePurchase
	}
	return fundingfee.ParsePurpose(f.LoanPurpose)
}

// Service returns the parsed service type, defaulting to regular when unset.
func (f FundingFee) Service() fundingfee.ServiceType {
	if f.ServiceType == "" {
		return fundingfee.ServiceRegular
	}
	return fundingfee.ParseServiceType(f.ServiceType)
}

// Borrower holds the income side of a scenario.
type Borrower struct {
	MonthlyGrossIncome float64 `json:"monthlyGrossIncome" mapstructure:"monthlyGrossIncome"`
	MonthlyOtherDebts  float64 `json:"monthlyOtherDebts" mapstructure:"monthlyOtherDebts"`
	TargetBackEndRatio float64 `json:"targetBackEndRatio" mapstructure:"targetBackEndRatio"`
}

// TargetRatio returns the configured back-end ratio target or the default.
func (b Borrower) TargetRatio() float64 {
	if b.TargetBackEndRatio > 0 {
		return b.TargetBackEndRatio
	}
	return constants.DefaultTargetBackEndRatio
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a configuration from r in the given
// format ("yaml" or "json").
func LoadConfigurationFromReader(r io.Reader, format string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType(format)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}
