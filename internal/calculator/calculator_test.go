package calculator

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/config"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/enrichment"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/parse"
	"go.uber.org/zap"
)

func TestRunSolvesActiveScenarios(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{
				Name:   "per kilogram",
				Active: true,
				Mode:   "1",
				Inputs: map[string]string{"productAssay": "5%", "tailsAssay": "0.3%", "feedAssay": "0.7%"},
			},
			{
				Name:   "ignored",
				Active: false,
				Mode:   "product",
				Inputs: map[string]string{},
			},
			{
				Name:   "ten kilograms",
				Active: true,
				Mode:   "product",
				Inputs: map[string]string{"productassay": "5%", "tailsassay": "0.3%", "feedassay": "0.711%", "productmass": "10 kg"},
			},
		},
	}

	outcomes, err := Run(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if len(Failed(outcomes)) != 0 {
		t.Fatalf("unexpected failures: %v", Failed(outcomes))
	}

	first := outcomes[0]
	if first.Name != "per kilogram" || first.Mode != modes.UnitProduct {
		t.Fatalf("unexpected first outcome %+v", first)
	}
	if math.Abs(first.Result.Balance.Feed-11.75) > 1e-9 {
		t.Errorf("expected feed 11.75, got %v", first.Result.Balance.Feed)
	}

	second := outcomes[1]
	if math.Abs(second.Result.Balance.Feed-114.35523114355232) > 1e-9 {
		t.Errorf("expected feed 114.355..., got %v", second.Result.Balance.Feed)
	}
	if math.Abs(second.Result.Balance.SWU-71.98318354056858) > 1e-6 {
		t.Errorf("expected SWU 71.983..., got %v", second.Result.Balance.SWU)
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{Name: "bad assay", Active: true, Mode: "1", Inputs: map[string]string{"productAssay": "abc", "tailsAssay": "0.3%", "feedAssay": "0.7%"}},
			{Name: "bad order", Active: true, Mode: "1", Inputs: map[string]string{"productAssay": "5%", "tailsAssay": "0.8%", "feedAssay": "0.7%"}},
			{Name: "bad mode", Active: true, Mode: "tails"},
			{Name: "optimum", Active: true, Mode: "optimize", Inputs: map[string]string{"productAssay": "5%", "feedAssay": "0.7%", "feedPrice": "50", "swuPrice": "100"}},
		},
	}

	outcomes, err := Run(nil, conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}

	if !errors.Is(outcomes[0].Err, parse.ErrParse) {
		t.Errorf("expected parse error, got %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, enrichment.ErrOrdering) {
		t.Errorf("expected ordering error, got %v", outcomes[1].Err)
	}
	if outcomes[2].Err == nil {
		t.Error("expected unknown mode error")
	}
	if outcomes[3].Err != nil {
		t.Fatalf("optimum scenario failed: %v", outcomes[3].Err)
	}
	if math.Abs(outcomes[3].Result.Optimum.TailsAssay-0.0029776895) > 1e-8 {
		t.Errorf("unexpected optimum tails %v", outcomes[3].Result.Optimum.TailsAssay)
	}

	if got := len(Failed(outcomes)); got != 3 {
		t.Fatalf("expected 3 failed outcomes, got %d", got)
	}
}

func TestRunHonoursOptimizerConfig(t *testing.T) {
	conf := config.Configuration{
		Optimizer: config.OptimizerConfig{MaxIterations: 5},
		Scenarios: []config.Scenario{
			{Name: "capped", Active: true, Mode: "5", Inputs: map[string]string{"productAssay": "5%", "feedAssay": "0.7%", "feedPrice": "50", "swuPrice": "100"}},
		},
	}

	outcomes, err := Run(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	optimum := outcomes[0].Result.Optimum
	if optimum == nil || optimum.Iterations != 5 || optimum.Converged {
		t.Fatalf("expected a capped search, got %+v", optimum)
	}

	conf.Optimizer = config.OptimizerConfig{Tolerance: 5}
	if _, err := Run(zap.NewNop(), conf); err == nil {
		t.Fatal("expected invalid optimizer configuration to fail the run")
	}
}

func TestRunExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	outcomes, err := Run(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 5 {
		t.Fatalf("expected 5 active outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("scenario %s failed: %v", o.Name, o.Err)
			continue
		}
		if b := o.Result.Balance; b != nil {
			if err := b.Check(); err != nil {
				t.Errorf("scenario %s violates mass balance: %v", o.Name, err)
			}
		}
	}
}
