package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nashra-news-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the key-value schema",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.Storage.Driver == "memory" {
		return fmt.Errorf("migrations need STORAGE_DRIVER postgres or sqlite")
	}

	db, err := database.New(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	switch args[0] {
	case "up":
		return db.RunMigrations(cfg.Storage.MigrationsPath)
	case "down":
		return db.MigrateDown(cfg.Storage.MigrationsPath)
	default:
		return fmt.Errorf("unknown migrate direction %q, want up or down", args[0])
	}
}
