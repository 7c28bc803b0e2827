package main

import (
	"os"

	"github.com/bennyhartnett/centrus-enrichment-calculator/cmd/enrichment-calculator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
