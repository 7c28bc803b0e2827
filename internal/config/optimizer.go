package config

import (
	"fmt"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/optimizer"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
)

// OptimizerConfig bounds the golden-section tails search.
type OptimizerConfig struct {
	MaxIterations int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	Tolerance     float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
}

// Normalize ensures defaults are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = constants.DefaultMaxIterations
	}
	if o.Tolerance == 0 {
		o.Tolerance = constants.Epsilon
	}
}

// Validate returns an error when the optimizer configuration is unusable.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	if o.MaxIterations < 0 {
		return fmt.Errorf("optimizer maxIterations %d must be positive", o.MaxIterations)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("optimizer tolerance %g must be positive", o.Tolerance)
	}
	if o.Tolerance > constants.MaxOptimizerTolerance {
		return fmt.Errorf("optimizer tolerance %g must not exceed %g", o.Tolerance, constants.MaxOptimizerTolerance)
	}
	return nil
}

// Options converts the configuration into search options.
func (o OptimizerConfig) Options() optimizer.Options {
	return optimizer.Options{MaxIterations: o.MaxIterations, Tolerance: o.Tolerance}.Normalize()
}
