package cmd

import (
	"fmt"
	"strings"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/calculator"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/config"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/output"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/validation"
	"github.com/spf13/cobra"
)

var (
	calcInputs        []string
	calcOutputFormat  string
	calcMaxIterations int
	calcTolerance     float64
)

var calcCmd = &cobra.Command{
	Use:   "calc MODE",
	Short: "Solve a single calculation from flags",
	Long: `Solve a single calculation. MODE is a mode number or name; each input is
given as name=value in the same notation the scenario file accepts.

Examples:
  enrichment-calculator calc 1 -i productAssay=5% -i tailsAssay=0.3% -i feedAssay=0.711%
  enrichment-calculator calc product -i productAssay=4.95% -i tailsAssay=0.25% \
      -i feedAssay=0.711% -i "productMass=1,000 kg"`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().StringArrayVarP(&calcInputs, "input", "i", nil, "input as name=value (repeatable)")
	calcCmd.Flags().StringVar(&calcOutputFormat, "output-format", constants.OutputFormatPretty, "type of output: pretty, csv")
	calcCmd.Flags().IntVar(&calcMaxIterations, "max-iterations", constants.DefaultMaxIterations, "optimizer iteration cap")
	calcCmd.Flags().Float64Var(&calcTolerance, "tolerance", constants.Epsilon, "optimizer bracket tolerance")
}

func runCalc(cmd *cobra.Command, args []string) error {
	if err := validation.ValidateOutputFormat(calcOutputFormat); err != nil {
		return err
	}
	id, err := modes.Canonical(args[0])
	if err != nil {
		return err
	}
	raw, err := parseInputFlags(calcInputs)
	if err != nil {
		return err
	}

	optimizerConfig := config.OptimizerConfig{MaxIterations: calcMaxIterations, Tolerance: calcTolerance}
	if err := optimizerConfig.Validate(); err != nil {
		return err
	}

	m, _ := modes.Lookup(id)
	for _, name := range m.Unused(raw) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: input %s is not used by mode %s\n", name, id)
	}

	result, err := modes.Solve(id, raw, optimizerConfig.Options())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if calcOutputFormat == constants.OutputFormatCSV {
		return output.CsvFormat(out, []calculator.Outcome{{Name: string(id), Mode: id, Result: result}})
	}
	_, err = fmt.Fprint(out, output.ClipboardText(result))
	return err
}

// parseInputFlags turns name=value pairs into raw inputs. Values may contain
// further '=' characters; names may not be empty.
func parseInputFlags(pairs []string) (map[string]string, error) {
	raw := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("input %q must have the form name=value", pair)
		}
		if _, dup := raw[name]; dup {
			return nil, fmt.Errorf("input %s given more than once", name)
		}
		raw[name] = value
	}
	return raw, nil
}
