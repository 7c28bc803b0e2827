package cmd

import (
	"fmt"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/calculator"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/config"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/output"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configLocation   string
	outputFormatFlag string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve every active scenario in a scenario file",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to scenario file")
	runCmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	if err := conf.Validate(); err != nil {
		logger.Error("invalid configuration",
			zap.String("op", "cmd.run"),
			zap.Error(err),
		)
		return err
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cmd.run"),
		)
	}

	outcomes, err := calculator.Run(logger, *conf)
	if err != nil {
		return fmt.Errorf("failed to run scenarios: %w", err)
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(out, outcomes)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(out, outcomes); err != nil {
			return err
		}
	}

	if failed := calculator.Failed(outcomes); len(failed) > 0 {
		return fmt.Errorf("%d of %d scenarios failed", len(failed), len(outcomes))
	}
	return nil
}
