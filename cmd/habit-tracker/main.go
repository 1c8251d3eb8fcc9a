// Package main is the entry point for the Habit Tracker.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/habit-tracker/tracker/config"
)

// Version is set at build time.
var Version = "dev"

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "habit-tracker",
		Short:        "Track habits and their streaks",
		Version:      Version,
		SilenceUsage: true,
		RunE:         runMenu,
	}
	addStorageFlags(rootCmd)
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and installs the default logger on w.
func loadConfig(cmd *cobra.Command, w *os.File) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if path, _ := cmd.Flags().GetString("data-file"); path != "" {
		cfg.Storage.DataFile = path
	}
	if driver, _ := cmd.Flags().GetString("storage"); driver != "" {
		cfg.Storage.Driver = driver
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	slog.SetDefault(newLogger(cfg.Log, w))
	return cfg, nil
}

func addStorageFlags(cmd *cobra.Command) {
	cmd.Flags().String("storage", "", "storage driver (json, sqlite, postgres)")
	cmd.Flags().String("data-file", "", "JSON data file for the json driver")
}
