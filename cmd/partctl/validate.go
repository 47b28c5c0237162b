package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

var validateStrict bool

func init() {
	cmd := newValidateCmd()
	cmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail on warnings as well as errors")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a table for overlaps, capacity and bad values",
		Long: `The validate command checks a partition table and exits with an error
when a problem is found.

Errors:   overlapping partitions, total size over flash capacity,
          partitions past the end of flash, offsets or sizes that are not numbers
Warnings: offsets not on a 4KB boundary, duplicate partition names

Example:
  partctl validate partitions.csv
  partctl validate partitions.csv --flash-size 16MB --strict
  partctl validate partitions.csv --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	path := args[0]

	opts, err := fileOptions()
	if err != nil {
		return err
	}

	printVerbose("Validating table: %s\n", path)

	t, err := partition.Load(path, opts)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	report := t.Report()

	failed := report.HasErrors() || (validateStrict && !report.OK())

	if jsonOut {
		diags := report.Diagnostics()
		if diags == nil {
			diags = []types.Diagnostic{}
		}
		result := map[string]interface{}{
			"file":        path,
			"capacity":    types.FlashSizeLabel(t.Capacity()),
			"valid":       !failed,
			"report":      report,
			"diagnostics": diags,
		}
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printInfo("\nValidating %s...\n", path)
		printReport(report)
		if failed {
			printInfo("\nResult: %s\n", paint(errorStyle, "✗ INVALID"))
		} else {
			printInfo("\nResult: %s\n", paint(okStyle, "✓ VALID"))
		}
	}

	if failed {
		return fmt.Errorf("%s: %d issue(s) found", path, len(report.Diagnostics()))
	}
	return nil
}
