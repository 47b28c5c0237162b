package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newShowCmd())
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show the partitions in a table",
		Long: `The show command lists every partition with its resolved offset,
size and end address, followed by flash usage and any problems found.

Example:
  partctl show partitions.csv
  partctl show partitions.csv --flash-size 8MB
  partctl show partitions.csv --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args)
		},
	}
	return cmd
}

func runShow(args []string) error {
	path := args[0]

	opts, err := fileOptions()
	if err != nil {
		return err
	}

	printVerbose("Opening table: %s\n", path)

	t, err := partition.Load(path, opts)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	if jsonOut {
		return printJSON(newTableJSON(path, t))
	}

	printInfo("%s (%d partitions, flash %s)\n\n", path, t.Len(), types.FlashSizeLabel(t.Capacity()))
	printEntries(t)
	printReport(t.Report())
	return nil
}
