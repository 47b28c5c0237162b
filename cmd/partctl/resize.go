package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

func init() {
	cmd := newResizeCmd()
	addWriteFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newResizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize <file> <index> <size>",
		Short: "Change a partition's size",
		Long: `The resize command changes the size of the partition at <index> and
moves every automatic offset after it. Partitions with explicit offsets are
never moved; if they now overlap, the overlap is reported.

Sizes accept decimal, 0x hex, and K or M suffixes.

Example:
  partctl resize partitions.csv 0 32K
  partctl resize partitions.csv 2 0x180000
  partctl resize partitions.csv 2 2M --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResize(args)
		},
	}
	return cmd
}

func runResize(args []string) error {
	path := args[0]
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	size := args[2]

	printVerbose("Resizing row %d to %s\n", index, size)

	return runEdit(path, "resize", func(t *table.Table) (types.ValidationReport, error) {
		return t.SetSize(index, size)
	})
}
