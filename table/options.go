package table

import (
	"io"
	"log/slog"

	"github.com/joshuapare/partkit/pkg/types"
)

// Options configures a Table.
type Options struct {
	// Capacity is the flash size partitions must fit in. Zero means "not
	// set", so a table cannot be created with no capacity; use SetCapacity
	// on the table for that.
	// Default: types.DefaultCapacity (4MB)
	Capacity types.Quantity

	// DefaultRow is the row AppendDefault adds.
	// Default: types.DefaultRow()
	DefaultRow *types.Row

	// Encoding forces the input encoding used by Read. Empty auto-detects.
	Encoding string

	// Logger receives debug records for mutations and cascades.
	// Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns the options a Table uses when none are given.
func DefaultOptions() Options {
	row := types.DefaultRow()
	return Options{
		Capacity:   types.DefaultCapacity,
		DefaultRow: &row,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// withDefaults fills every unset field from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Capacity == 0 {
		o.Capacity = d.Capacity
	}
	if o.DefaultRow == nil {
		o.DefaultRow = d.DefaultRow
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
