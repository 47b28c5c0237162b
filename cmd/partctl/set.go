package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

func init() {
	cmd := newSetCmd()
	addWriteFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <index> <field> <value>",
		Short: "Set one field of a partition",
		Long: `The set command changes one field of the partition at <index>
(counting from 0). Fields: name, type, subtype, offset, size, flags.

Changing a size or offset moves the automatic offsets that follow it.
An empty offset ("") makes the partition automatic again.

Example:
  partctl set partitions.csv 0 name nvs_key
  partctl set partitions.csv 2 offset 0x20000
  partctl set partitions.csv 2 offset ""
  partctl set partitions.csv 1 size 32K --dry-run`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	path := args[0]
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	field, err := types.ParseField(args[2])
	if err != nil {
		return err
	}
	value := args[3]

	printVerbose("Setting %s of row %d to %q\n", field, index, value)

	return runEdit(path, "set", func(t *table.Table) (types.ValidationReport, error) {
		return t.SetField(index, field, value)
	})
}
