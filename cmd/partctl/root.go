package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/internal/config"
	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	configPath string
	flashSize  string

	// Write flags, shared by every command that saves the file
	dryRun   bool
	noBackup bool
)

var rootCmd = &cobra.Command{
	Use:   "partctl",
	Short: "Inspect and edit ESP partition tables",
	Long: `partctl reads, validates and edits ESP-IDF partition table CSV files.
Offsets left empty are placed automatically after the previous partition,
and every edit is checked for overlaps and flash capacity.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./.partkit.yaml or ~/.partkit/config.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&flashSize, "flash-size", "", "Flash size: 4MB, 8MB, 16MB, 32MB or any size (overrides config)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// addWriteFlags registers the flags of commands that save the table.
func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without writing the file")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not create <file>.bak")
}

// fileOptions merges config file, environment and flags.
func fileOptions() (*partition.Options, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		printVerbose("Using config: %s\n", cfg.Source)
	}

	opts, err := cfg.PartitionOptions()
	if err != nil {
		return nil, err
	}
	if flashSize != "" {
		q, err := types.ParseFlashSize(flashSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --flash-size: %w", err)
		}
		opts.Capacity = q
	}
	if noBackup {
		opts.CreateBackup = false
	}
	opts.DryRun = dryRun
	opts.Logger = newLogger()
	return opts, nil
}

// newLogger returns a stderr debug logger in verbose mode and nil otherwise,
// which the library treats as discard.
func newLogger() *slog.Logger {
	if !verbose || quiet {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// parseIndex converts a row number argument.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a row number starting at 0", s)
	}
	return n, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
