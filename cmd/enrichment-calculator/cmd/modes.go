package cmd

import (
	"fmt"
	"io"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the calculation modes and their inputs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printModes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func printModes(w io.Writer) {
	for _, m := range modes.All() {
		fmt.Fprintf(w, "%d  %-13s %s\n", m.Number, m.ID, m.Title)
		for _, in := range m.Inputs {
			fmt.Fprintf(w, "     %-13s %-7s %s\n", in.Name, in.Kind, in.Label)
		}
	}
}
