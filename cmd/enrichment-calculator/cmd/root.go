// Package cmd implements the enrichment-calculator command line.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "enrichment-calculator",
	Short: "Uranium enrichment feed, product, tails and SWU calculator",
	Long: `enrichment-calculator solves the mass and separative work balance of a
uranium enrichment cascade.

Modes:
  1 unit-product  feed, tails and SWU per kilogram of product
  2 product       feed, tails and SWU for a product mass
  3 feed          product, tails and SWU from a feed mass
  4 swu           product, feed and tails from available SWU
  5 optimize      tails assay minimising cost for given feed and SWU prices

Environment variables from a .env file in the working directory are loaded
before configuration is read; ENRICH_* variables override scenario file values.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}
