/*
Package partition reads and writes ESP partition table files.

It is the file layer over package table: Load decodes a CSV file into a
*table.Table, Save writes one back safely, and Edit wraps the two around a
mutation.

# Quick Start

Grow a partition and save:

	err := partition.Edit("partitions.csv", nil, func(t *table.Table) (types.ValidationReport, error) {
	    return t.SetSize(1, "32K")
	})

Load, inspect, and save by hand:

	t, err := partition.Load("partitions.csv", &partition.Options{Capacity: types.FlashSize8MB})
	if err != nil {
	    log.Fatal(err)
	}
	if _, err := t.AppendDefault(); err != nil {
	    log.Fatal(err)
	}
	err = partition.Save("partitions.csv", t, &partition.Options{CreateBackup: true})

# Safe Writes

Save never writes over the target directly. The table is encoded into a
uniquely named temporary file next to the target, flushed to disk, and then
renamed over the target, so a crash leaves either the old file or the new
one. With CreateBackup the previous file is first copied to <path>.bak.

# Encodings

Input encoding is detected (UTF-8, UTF-16 with BOM, Windows-1252 fallback)
unless Options.Encoding forces one. Output is UTF-8 unless
Options.OutputEncoding selects UTF-16LE. Line endings follow the source file.

# Error Handling

File failures wrap types.ErrIO and keep the underlying cause:

	_, err := partition.Load("missing.csv", nil)
	errors.Is(err, types.ErrIO)       // true
	errors.Is(err, fs.ErrNotExist)    // true

Validation problems are never errors; they are in the report.
*/
package partition
