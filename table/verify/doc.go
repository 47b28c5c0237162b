// Package verify provides validation checks for ESP partition tables.
//
// # Overview
//
// Checks operate on a slice of types.Entry plus the flash capacity and never
// modify their input. Every check is advisory: the table model calls Check
// after each mutation and hands the report to the host, which decides what to
// show. Nothing here blocks editing.
//
// Checks:
//   - Overlaps: the first pair of partitions sharing flash, in address order
//   - Capacity: total partition size against the flash size
//   - Bounds: partitions that end past the end of flash
//   - Alignment: explicit offsets that are not on a 4KB sector boundary
//   - Duplicates: partition names used more than once
//   - FieldErrors: offset or size cells that are not numbers
//
// # Quick Start
//
// Run every check in one call:
//
//	report := verify.Check(t.Entries(), types.FlashSize4MB)
//	if !report.OK() {
//	    for _, d := range report.Diagnostics() {
//	        fmt.Println(d)
//	    }
//	}
//
// Run a single check:
//
//	if ov := verify.Overlaps(entries); ov != nil {
//	    fmt.Printf("move %q to %s\n", ov.SecondName, ov.SuggestedOffset.Hex())
//	}
//
// # Overlap Semantics
//
// Only entries with a resolved offset (explicit, or placed by the cascade) and a
// non-zero valid size take part. Ranges are half-open [offset, offset+size),
// so a partition ending exactly where the next begins does not overlap it.
// Ranges are sorted by start address (ties keep table order) and only adjacent
// pairs are compared; the first conflict is reported:
//
//	nvs      0x9000  0x6000   -> [0x9000, 0xF000)
//	phy_init 0xE000  0x1000   -> [0xE000, 0xF000)
//
//	Overlap{FirstName: "nvs", SecondName: "phy_init",
//	        OverlapBytes: 0x1000, SuggestedOffset: 0xF000}
//
// SuggestedOffset is the first 4KB boundary at or after the end of the first
// partition, i.e. where the second one could be moved.
//
// # Capacity Semantics
//
// Used bytes are the sum of every valid size, whether or not the partition has
// a resolved offset. This matches how the total is shown to users: a partition
// still waiting for an offset still needs flash. Capacity and overlap are
// reported independently.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package verify
