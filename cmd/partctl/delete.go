package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

var deleteRecalculate bool

func init() {
	cmd := newDeleteCmd()
	cmd.Flags().BoolVar(&deleteRecalculate, "recalculate", false, "Re-place automatic offsets after deleting")
	addWriteFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <file> <index>",
		Short: "Remove a partition",
		Long: `The delete command removes the partition at <index>. Automatic
offsets after it keep their addresses unless --recalculate is given, which
closes the gap.

Example:
  partctl delete partitions.csv 2
  partctl delete partitions.csv 2 --recalculate`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
	return cmd
}

func runDelete(args []string) error {
	path := args[0]
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	printVerbose("Deleting row %d\n", index)

	return runEdit(path, "delete", func(t *table.Table) (types.ValidationReport, error) {
		report, err := t.Delete(index)
		if err != nil || !deleteRecalculate {
			return report, err
		}
		return t.Recalculate(), nil
	})
}
