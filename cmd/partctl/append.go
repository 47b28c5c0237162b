package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

var (
	appendName    string
	appendType    string
	appendSubType string
	appendOffset  string
	appendSize    string
	appendFlags   string
)

func init() {
	cmd := newAppendCmd()
	cmd.Flags().StringVar(&appendName, "name", "", "Partition name (default from config)")
	cmd.Flags().StringVar(&appendType, "type", "", "Partition type (default from config)")
	cmd.Flags().StringVar(&appendSubType, "subtype", "", "Partition subtype (default from config)")
	cmd.Flags().StringVar(&appendOffset, "offset", "", "Offset (default: placed automatically)")
	cmd.Flags().StringVar(&appendSize, "size", "", "Size (default from config)")
	cmd.Flags().StringVar(&appendFlags, "flags", "", "Flags")
	addWriteFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newAppendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append <file>",
		Short: "Add a partition at the end",
		Long: `The append command adds a partition after the last one. Fields not
given on the command line come from the default_row section of the config
(new_part, data, undefined, 4K). Without --offset the partition is placed
right after the previous one on a 4KB boundary.

Example:
  partctl append partitions.csv
  partctl append partitions.csv --name storage --subtype spiffs --size 1M
  partctl append partitions.csv --name coredump --subtype coredump --size 64K --offset 0x3F0000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(args)
		},
	}
	return cmd
}

// appendRow overlays the --name/--type/... flags on the default row.
func appendRow(base types.Row) types.Row {
	row := base
	row.Offset = ""
	for _, f := range []struct {
		field types.Field
		value string
	}{
		{types.FieldName, appendName},
		{types.FieldType, appendType},
		{types.FieldSubType, appendSubType},
		{types.FieldOffset, appendOffset},
		{types.FieldSize, appendSize},
		{types.FieldFlags, appendFlags},
	} {
		if f.value != "" {
			row.Set(f.field, f.value)
		}
	}
	return row
}

func runAppend(args []string) error {
	path := args[0]

	return runEdit(path, "append", func(t *table.Table) (types.ValidationReport, error) {
		row := appendRow(t.DefaultRow())
		printVerbose("Appending %q\n", row.Name)
		return t.Append(row)
	})
}
