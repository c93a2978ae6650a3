package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "nashra",
	Short:         "Entrepreneur NASHRA news API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger shared by all commands
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}
