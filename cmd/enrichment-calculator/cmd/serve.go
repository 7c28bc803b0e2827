package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/server"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/spf13/cobra"
)

var (
	serverConfigLocation string
	serveAddress         string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator web UI and JSON API",
	Long: `Serve the calculator web UI and JSON API.

The listen address is taken from --address, then ENRICH_SERVER_ADDRESS,
then the server configuration file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serverConfigLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override, e.g. :8080")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		return err
	}
	if env := strings.TrimSpace(os.Getenv(constants.EnvPrefix + "_SERVER_ADDRESS")); env != "" {
		cfg.Address = env
	}
	if serveAddress != "" {
		cfg.Address = serveAddress
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, logger, cfg, Version)
}
