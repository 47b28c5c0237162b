// Package table holds an ESP partition table in memory and keeps it
// consistent while it is edited.
//
// # Overview
//
// A Table is an ordered list of types.Entry values plus the flash capacity
// they must fit in. Table order is the display order and the order in which
// automatic offsets flow; it is independent of address order.
//
// Every mutation returns the fresh types.ValidationReport. Problems such as
// overlaps or an over-full flash are reported, never repaired, and never
// block further edits. Only structural misuse (an index outside the table)
// is returned as an error, and then the table is left untouched.
//
// # Automatic Offsets
//
// An entry whose offset column is empty is auto. The table places it at the
// first 4KB boundary at or after the end of the entry before it, or at 0x8000
// for the first entry. Explicit offsets are pinned and are never moved.
//
//	nvs,      data, nvs,     0x9000, 24K,
//	phy_init, data, phy,     ,       4K,    -> placed at 0xF000
//	factory,  app,  factory, ,       1M,    -> placed at 0x10000
//
// Placement cascades: growing nvs to 32K moves phy_init to 0x11000 and
// factory to 0x12000. An entry whose offset or size does not resolve breaks
// the chain, and auto entries after it stay unplaced until a pinned entry
// re-establishes an anchor.
//
// Auto entries stay auto for the life of the Table. Render writes their
// placement as hex, so a file that is saved and re-read has every offset
// pinned.
//
// # Quick Start
//
//	t := table.Parse(text, table.Options{Capacity: types.FlashSize4MB})
//	report, err := t.SetSize(0, "32K")
//	if err != nil {
//	    return err
//	}
//	for _, d := range report.Diagnostics() {
//	    fmt.Println(d)
//	}
//	os.WriteFile(path, []byte(t.Render()), 0o644)
//
// # Thread Safety
//
// A Table is not safe for concurrent use. Hosts serialise edits, which they
// do naturally since edits come from one user.
package table
