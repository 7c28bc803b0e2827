// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"
)

// ConfigValidator collects warnings for a scenario file.
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ScenarioConfig is the validation view of one scenario. Missing and Unused
// are only meaningful when KnownMode is true.
type ScenarioConfig struct {
	Name      string
	Active    bool
	Mode      string
	KnownMode bool
	Missing   []string
	Unused    []string
}

// ValidateScenario returns the warnings for a single scenario.
func ValidateScenario(scenario ScenarioConfig) []string {
	var warnings []string

	label := scenario.Name
	if strings.TrimSpace(label) == "" {
		label = "(unnamed)"
		warnings = append(warnings, fmt.Sprintf("Scenario with mode '%s' has no name", scenario.Mode))
	}

	if !scenario.KnownMode {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' uses unknown mode '%s'", label, scenario.Mode))
		return warnings
	}

	if len(scenario.Missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' is missing inputs: %s",
			label, strings.Join(scenario.Missing, ", ")))
	}
	if len(scenario.Unused) > 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has inputs its mode ignores: %s",
			label, strings.Join(scenario.Unused, ", ")))
	}

	return warnings
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Scenarios) == 0 {
		return []string{"No scenarios defined"}
	}

	active := 0
	seen := make(map[string]bool)
	for _, scenario := range cv.Scenarios {
		if !scenario.Active {
			continue
		}
		active++

		if scenario.Name != "" {
			if seen[scenario.Name] {
				warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
			}
			seen[scenario.Name] = true
		}

		warnings = append(warnings, ValidateScenario(scenario)...)
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be calculated")
	}

	return warnings
}
