package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

func init() {
	cmd := newInsertCmd()
	addWriteFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert <file> <index> <name> <type> <subtype> <offset> <size> [flags]",
		Short: "Insert a partition before a row",
		Long: `The insert command adds a partition before the row at <index>. Use
an index equal to the number of partitions to add at the end, and an empty
offset ("") to have it placed automatically.

Example:
  partctl insert partitions.csv 1 otadata data ota "" 8K
  partctl insert partitions.csv 3 storage data spiffs 0x210000 1M
  partctl insert partitions.csv 0 secure data nvs "" 4K encrypted`,
		Args: cobra.RangeArgs(7, 8),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(args)
		},
	}
	return cmd
}

func runInsert(args []string) error {
	path := args[0]
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	row := types.Row{
		Name:    args[2],
		Type:    args[3],
		SubType: args[4],
		Offset:  args[5],
		Size:    args[6],
	}
	if len(args) > 7 {
		row.Flags = args[7]
	}

	printVerbose("Inserting %q at row %d\n", row.Name, index)

	return runEdit(path, "insert", func(t *table.Table) (types.ValidationReport, error) {
		return t.Insert(index, row)
	})
}
