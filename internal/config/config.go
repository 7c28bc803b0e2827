// Package config defines the data structures of a scenario file and the
// functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/validation"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Configuration holds all configuration for the enrichment calculator.
type Configuration struct {
	Logging   LoggingConfig   `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
	Optimizer OptimizerConfig `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	History   HistoryConfig   `yaml:"history,omitempty" mapstructure:"history"`
	Scenarios []Scenario      `yaml:"scenarios" mapstructure:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
}

// HistoryConfig bounds the in-memory log of past calculations.
type HistoryConfig struct {
	Limit int `yaml:"limit,omitempty" mapstructure:"limit"`
}

// Scenario is one calculation: a mode and the raw text of its inputs, exactly
// as it would be typed into the calculator form.
type Scenario struct {
	Name   string            `yaml:"name" mapstructure:"name"`
	Active bool              `yaml:"active" mapstructure:"active"`
	Mode   string            `yaml:"mode" mapstructure:"mode"`
	Inputs map[string]string `yaml:"inputs" mapstructure:"inputs"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with ENRICH_ override
// file values, e.g. ENRICH_LOGGING_LEVEL=debug.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r, as used for
// uploads to the HTTP server.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Optimizer.Normalize()
	configuration.History.Normalize()
	return &configuration, nil
}

// Normalize applies the default history limit.
func (h *HistoryConfig) Normalize() {
	if h.Limit <= 0 {
		h.Limit = constants.DefaultHistoryLimit
	}
}

// ModeID resolves the scenario's mode to its canonical identifier.
func (s Scenario) ModeID() (modes.ID, error) {
	return modes.Canonical(s.Mode)
}

// Validate returns every hard error in the configuration combined into one.
// Problems with individual scenarios are reported by ValidateConfiguration
// instead, since the runner records them per scenario.
func (c *Configuration) Validate() error {
	var err error
	if c.Logging.Level != "" {
		err = multierr.Append(err, validation.ValidateLogLevel(c.Logging.Level))
	}
	if c.Logging.Format != "" {
		err = multierr.Append(err, validation.ValidateLogFormat(c.Logging.Format))
	}
	if c.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))
	}
	err = multierr.Append(err, c.Optimizer.Validate())
	return err
}

// ValidateConfiguration performs general validation of the scenarios and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var scenarios []validation.ScenarioConfig
	for _, scenario := range c.Scenarios {
		info := validation.ScenarioConfig{
			Name:   scenario.Name,
			Active: scenario.Active,
			Mode:   scenario.Mode,
		}
		if id, err := scenario.ModeID(); err == nil {
			mode, _ := modes.Lookup(id)
			info.KnownMode = true
			info.Missing = mode.Missing(scenario.Inputs)
			info.Unused = mode.Unused(scenario.Inputs)
		}
		scenarios = append(scenarios, info)
	}

	validator := validation.ConfigValidator{Scenarios: scenarios}
	return validator.ValidateAll()
}
