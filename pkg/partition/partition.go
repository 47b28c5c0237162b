package partition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joshuapare/partkit/internal/fsync"
	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

// Load reads and parses a partition table file.
func Load(path string, opts *Options) (*table.Table, error) {
	opts = opts.orDefault()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.IOError(fmt.Sprintf("failed to read %s", path), err)
	}

	t, err := table.Read(data, opts.tableOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	opts.Logger.Debug("loaded table", "path", path, "bytes", len(data), "entries", t.Len())
	return t, nil
}

// LoadOrNew is Load, except that a missing file yields an empty table.
func LoadOrNew(path string, opts *Options) (*table.Table, error) {
	t, err := Load(path, opts)
	if errors.Is(err, fs.ErrNotExist) {
		opts = opts.orDefault()
		opts.Logger.Debug("no table file, starting empty", "path", path)
		return table.New(opts.tableOptions()), nil
	}
	return t, err
}

// Save writes t to path atomically. See the package documentation.
func Save(path string, t *table.Table, opts *Options) error {
	opts = opts.orDefault()

	data, err := t.Encode(opts.renderOptions())
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	if opts.DryRun {
		opts.Logger.Debug("dry run, not saving", "path", path, "bytes", len(data))
		return nil
	}

	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return types.IOError(fmt.Sprintf("failed to save %s", path), fmt.Errorf("is a directory"))
		}
		perm = info.Mode().Perm()

		if opts.CreateBackup {
			backupPath := path + ".bak"
			if err := copyFile(path, backupPath); err != nil {
				return types.IOError(fmt.Sprintf("failed to create backup at %s", backupPath), err)
			}
			opts.Logger.Debug("created backup", "path", backupPath)
		}
	}

	if err := writeAtomic(path, data, perm); err != nil {
		return types.IOError(fmt.Sprintf("failed to save %s", path), err)
	}
	opts.Logger.Debug("saved table", "path", path, "bytes", len(data), "entries", t.Len())
	return nil
}

// Edit loads path, applies fn, and saves the result unless fn fails or
// opts.DryRun is set. The report fn returns is passed through.
func Edit(path string, opts *Options, fn func(*table.Table) (types.ValidationReport, error)) (types.ValidationReport, error) {
	opts = opts.orDefault()

	t, err := Load(path, opts)
	if err != nil {
		return types.ValidationReport{}, err
	}

	report, err := fn(t)
	if err != nil {
		return report, err
	}

	if err := Save(path, t, opts); err != nil {
		return report, err
	}
	return report, nil
}

// writeAtomic writes data to a temporary file beside path, flushes it, and
// renames it over path.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := fsync.File(f, fsync.Full); err != nil {
		f.Close()
		os.Remove(tempPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	// Directory sync makes the rename durable; failure here leaves a valid file.
	_ = fsync.Dir(dir)
	return nil
}
