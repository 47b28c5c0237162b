package main

import (
	"fmt"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

// editResult is the JSON form of a mutating command's outcome.
type editResult struct {
	tableJSON
	Action string `json:"action"`
	DryRun bool   `json:"dry_run"`
	Saved  bool   `json:"saved"`
}

// runEdit loads path, applies fn, saves unless --dry-run, and prints the
// resulting table and report.
func runEdit(path, action string, fn func(*table.Table) (types.ValidationReport, error)) error {
	opts, err := fileOptions()
	if err != nil {
		return err
	}

	printVerbose("Opening table: %s\n", path)

	var edited *table.Table
	report, err := partition.Edit(path, opts, func(t *table.Table) (types.ValidationReport, error) {
		edited = t
		return fn(t)
	})
	if err != nil {
		return fmt.Errorf("%s failed: %w", action, err)
	}

	if jsonOut {
		return printJSON(editResult{
			tableJSON: newTableJSON(path, edited),
			Action:    action,
			DryRun:    opts.DryRun,
			Saved:     !opts.DryRun,
		})
	}

	printInfo("%s: %s\n\n", action, path)
	printEntries(edited)
	printReport(report)

	if opts.DryRun {
		printInfo("\nDry run: %s was not written\n", path)
		return nil
	}
	printInfo("\n✓ Saved %s\n", path)
	if opts.CreateBackup {
		printInfo("Backup created: %s.bak\n", path)
	}
	return nil
}
