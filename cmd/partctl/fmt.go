package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/partition"
)

var fmtWrite bool

func init() {
	cmd := newFmtCmd()
	cmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to the file")
	addWriteFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a table in canonical form",
		Long: `The fmt command rewrites a table with the standard header, one
comma-and-space separated line per partition, and every automatic offset
written out as a hex address. Comments and blank lines are dropped.

By default the result is printed; --write saves it over the file.

Example:
  partctl fmt partitions.csv
  partctl fmt partitions.csv --write
  partctl fmt partitions.csv --write --no-backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args)
		},
	}
	return cmd
}

func runFmt(args []string) error {
	path := args[0]

	opts, err := fileOptions()
	if err != nil {
		return err
	}

	t, err := partition.Load(path, opts)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	if !fmtWrite {
		// Always print, even in quiet mode: the output is the result.
		fmt.Fprint(os.Stdout, t.Render())
		return nil
	}

	if err := partition.Save(path, t, opts); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if opts.DryRun {
		printInfo("Dry run: %s was not written\n", path)
		return nil
	}
	printInfo("✓ Formatted %s\n", path)
	return nil
}
