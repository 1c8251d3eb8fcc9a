package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/habit-tracker/tracker/internal/infra/dependency"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/cli"
)

// runMenu starts the interactive menu. Logs go to stderr so the menu on
// stdout stays readable.
func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, os.Stderr)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	storage, err := dependency.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	injector := dependency.NewInjector(cfg, storage)
	menu := cli.NewMenu(injector.UseCases, storage.Flush, cmd.InOrStdin(), cmd.OutOrStdout())
	return menu.Run(ctx)
}
