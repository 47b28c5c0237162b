// Package logger holds the editor's debug log. Records are JSON lines in a
// per-day file; every record carries the session id and the table being
// edited so several editor runs writing the same file can be told apart.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// L is the editor's logger. It discards everything until Init enables it.
var L = discard()

const (
	logPrefix  = "partexplorer-"
	logSuffix  = ".log"
	dateLayout = "2006-01-02"

	// DefaultRetention is how long day files are kept when Options.Retention
	// is zero.
	DefaultRetention = 30 * 24 * time.Hour
)

// Options configures Init.
type Options struct {
	// Enabled turns logging on. When false every record is discarded.
	Enabled bool

	// Dir holds the day files.
	// Default: ~/.partexplorer/logs
	Dir string

	// Level is the minimum level, as accepted by slog ("debug", "info",
	// "warn", "error", or offsets like "info+2").
	// Default: "info"
	Level string

	// Table is the partition table path recorded on every line.
	Table string

	// Retention removes day files older than this.
	// Default: DefaultRetention
	Retention time.Duration

	now func() time.Time
}

// Init configures L. The returned function closes the log file and is
// safe to call when logging is disabled.
func Init(opts Options) (func() error, error) {
	L = discard()
	if !opts.Enabled {
		return noClose, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return noClose, err
	}

	dir := opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return noClose, fmt.Errorf("locate log directory: %w", err)
		}
		dir = filepath.Join(home, ".partexplorer", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return noClose, fmt.Errorf("create log directory: %w", err)
	}

	now := time.Now
	if opts.now != nil {
		now = opts.now
	}
	retention := opts.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}
	removed := pruneLogs(dir, now().Add(-retention))

	path := filepath.Join(dir, fileName(now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return noClose, fmt.Errorf("open log file: %w", err)
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})).
		With("session", uuid.NewString(), "table", opts.Table)
	if removed > 0 {
		L.Debug("pruned old logs", "count", removed)
	}
	return func() error {
		L = discard()
		return f.Close()
	}, nil
}

// ParseLevel maps a level name to a slog.Level; empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noClose() error { return nil }

// fileName is the day file for t, e.g. partexplorer-2024-01-05.log.
func fileName(t time.Time) string {
	return logPrefix + t.Format(dateLayout) + logSuffix
}

// pruneLogs removes day files dated before cutoff and reports how many went.
// Files that do not look like day files are left alone.
func pruneLogs(dir string, cutoff time.Time) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		day, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil || !day.Before(cutoff) {
			continue
		}
		if os.Remove(filepath.Join(dir, name)) == nil {
			removed++
		}
	}
	return removed
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
