package partition

import (
	"io"
	"log/slog"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

// Options controls file operations.
type Options struct {
	// Capacity is the flash size the table is checked against.
	// Default: types.DefaultCapacity
	Capacity types.Quantity

	// DefaultRow is the row AppendDefault adds.
	// Default: types.DefaultRow()
	DefaultRow *types.Row

	// Encoding forces the input encoding ("UTF-8", "UTF-16LE",
	// "WINDOWS-1252"). Empty auto-detects.
	Encoding string

	// OutputEncoding is "UTF-8" or "UTF-16LE".
	// Default: "UTF-8"
	OutputEncoding string

	// WithBOM includes a byte-order mark in output.
	WithBOM bool

	// CreateBackup copies the existing file to <path>.bak before saving.
	CreateBackup bool

	// DryRun skips every write. Load and Edit still run the mutation and
	// return its report.
	DryRun bool

	// Logger receives debug records. Default: discard.
	Logger *slog.Logger
}

func (o *Options) orDefault() *Options {
	if o == nil {
		o = &Options{}
	}
	out := *o
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &out
}

func (o *Options) tableOptions() table.Options {
	return table.Options{
		Capacity:   o.Capacity,
		DefaultRow: o.DefaultRow,
		Encoding:   o.Encoding,
		Logger:     o.Logger,
	}
}

func (o *Options) renderOptions() types.RenderOptions {
	return types.RenderOptions{
		OutputEncoding: o.OutputEncoding,
		WithBOM:        o.WithBOM,
	}
}
