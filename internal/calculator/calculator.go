// Package calculator runs the scenarios of a configuration through the
// calculation modes and collects one outcome per scenario.
package calculator

import (
	"fmt"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/config"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"go.uber.org/zap"
)

// Outcome holds the result of one scenario, or the error that stopped it.
type Outcome struct {
	Name   string
	Mode   modes.ID
	Result modes.Result
	Err    error
}

// Run solves every active scenario in conf. Scenarios are independent, so a
// failing scenario records its error in its Outcome and the run continues.
// The returned error is reserved for problems with the configuration as a
// whole.
func Run(logger *zap.Logger, conf config.Configuration) ([]Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := conf.Optimizer.Validate(); err != nil {
		return nil, err
	}
	opts := conf.Optimizer.Options()

	var outcomes []Outcome
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "calculator.Run"),
			)
			continue
		}

		outcome := Outcome{Name: scenario.Name}
		id, err := scenario.ModeID()
		if err != nil {
			outcome.Err = err
			logger.Warn("scenario has an unknown mode",
				zap.String("op", "calculator.Run"),
				zap.String("scenario", scenario.Name),
				zap.String("mode", scenario.Mode),
				zap.Error(err),
			)
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Mode = id

		result, err := modes.Solve(id, scenario.Inputs, opts)
		if err != nil {
			outcome.Err = err
			logger.Warn("scenario failed",
				zap.String("op", "calculator.Run"),
				zap.String("scenario", scenario.Name),
				zap.String("mode", string(id)),
				zap.Error(err),
			)
		} else {
			outcome.Result = result
			logger.Debug("scenario solved",
				zap.String("op", "calculator.Run"),
				zap.String("scenario", scenario.Name),
				zap.String("mode", string(id)),
			)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
