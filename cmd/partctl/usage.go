package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

var usageWidth int

func init() {
	cmd := newUsageCmd()
	cmd.Flags().IntVar(&usageWidth, "width", 50, "Width of the usage bar")
	rootCmd.AddCommand(cmd)
}

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage <file>",
		Short: "Show how much flash the partitions use",
		Long: `The usage command draws a bar of used flash and lists each partition's
share of the total.

Example:
  partctl usage partitions.csv
  partctl usage partitions.csv --flash-size 8MB --width 80`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsage(args)
		},
	}
	return cmd
}

type shareJSON struct {
	Name    string  `json:"name"`
	Size    uint64  `json:"size"`
	Percent float64 `json:"percent"`
}

func runUsage(args []string) error {
	path := args[0]

	opts, err := fileOptions()
	if err != nil {
		return err
	}

	t, err := partition.Load(path, opts)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	u := t.Report().Usage

	var shares []shareJSON
	for _, e := range t.Entries() {
		size, ok := e.ResolvedSize()
		if !ok {
			continue
		}
		pct := 0.0
		if u.CapacityBytes > 0 {
			pct = float64(size) / float64(u.CapacityBytes) * 100
		}
		shares = append(shares, shareJSON{Name: e.Name, Size: uint64(size), Percent: pct})
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":       path,
			"capacity":   types.FlashSizeLabel(t.Capacity()),
			"usage":      u,
			"partitions": shares,
		})
	}

	width := max(usageWidth, 10)
	printInfo("Flash %s\n", types.FlashSizeLabel(t.Capacity()))
	printInfo("[%s]\n", usageBar(u, width))
	printInfo("%s\n\n", u.String())
	for _, s := range shares {
		printInfo("  %-16s %10s  %5.1f%%\n", s.Name, types.Quantity(s.Size).Human(), s.Percent)
	}
	if r := t.Report(); r.Capacity != nil {
		printInfo("\n%s %s\n", paint(errorStyle, "✗"), r.Capacity.Error())
	}
	return nil
}
