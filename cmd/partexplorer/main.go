package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/partkit/cmd/partexplorer/logger"
	"github.com/joshuapare/partkit/internal/config"
	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliArgs is the parsed command line.
type cliArgs struct {
	debug      bool
	help       bool
	version    bool
	flashSize  string
	configPath string
	logLevel   string
	path       string
}

var errUsage = errors.New("usage")

// parseArgs reads flags anywhere on the command line; the first
// non-flag argument is the table file.
func parseArgs(args []string) (cliArgs, error) {
	var out cliArgs
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--debug", "-d":
			out.debug = true
		case "--help", "-h":
			out.help = true
		case "--version", "-v":
			out.version = true
		case "--flash-size", "--config", "--log-level":
			if i+1 >= len(args) {
				return out, fmt.Errorf("%s needs a value", arg)
			}
			i++
			switch arg {
			case "--flash-size":
				out.flashSize = args[i]
			case "--config":
				out.configPath = args[i]
			default:
				out.logLevel = args[i]
			}
		default:
			if out.path != "" {
				return out, fmt.Errorf("unexpected argument %q", arg)
			}
			out.path = arg
		}
	}
	if out.path == "" && !out.help && !out.version {
		return out, errUsage
	}
	return out, nil
}

// logOptions enables the log with --debug or --log-level; --debug alone
// logs everything.
func logOptions(args cliArgs) logger.Options {
	level := args.logLevel
	if level == "" && args.debug {
		level = "debug"
	}
	return logger.Options{
		Enabled: args.debug || args.logLevel != "",
		Level:   level,
		Table:   args.path,
	}
}

// options merges the config file with command line overrides.
func options(args cliArgs) (*partition.Options, error) {
	cfg, err := config.Load(args.configPath)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.PartitionOptions()
	if err != nil {
		return nil, err
	}
	if args.flashSize != "" {
		capacity, err := types.ParseFlashSize(args.flashSize)
		if err != nil {
			return nil, fmt.Errorf("--flash-size: %w", err)
		}
		opts.Capacity = capacity
	}
	opts.Logger = logger.L
	if cfg.Source != "" {
		logger.Info("using config", "path", cfg.Source)
	}
	return opts, nil
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		printUsage()
		os.Exit(1)
	}

	if args.help {
		printHelp()
		os.Exit(0)
	}

	if args.version {
		fmt.Printf("partexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	// Initialize logger (must be before any logging calls)
	closeLog, err := logger.Init(logOptions(args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	defer closeLog()

	logger.Info("starting partexplorer", "path", args.path, "debug", args.debug)

	opts, err := options(args)
	if err != nil {
		logger.Error("bad configuration", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	m := NewModel(args.path, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	logger.Info("partexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: partexplorer [options] <partitions.csv>\n")
	fmt.Fprintf(os.Stderr, "Try 'partexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("partexplorer - Interactive editor for ESP partition tables")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  partexplorer [options] <partitions.csv>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Opens a partition table CSV in a terminal editor. A missing file")
	fmt.Println("  starts an empty table that is created on save.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Cell editing with automatic offset placement")
	fmt.Println("    - Overlap, capacity and alignment checks after every edit")
	fmt.Println("    - Flash usage bar coloured by partition kind")
	fmt.Println("    - Copy the table to the clipboard (y)")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Move between partitions")
	fmt.Println("    ←/h, →/l    Move between columns")
	fmt.Println("    Enter       Edit cell / commit edit")
	fmt.Println("    a, i, d     Append, insert, delete partition")
	fmt.Println("    f           Next flash size preset")
	fmt.Println("    r           Recalculate auto offsets")
	fmt.Println("    s           Save")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug          Enable debug logging to ~/.partexplorer/logs/")
	fmt.Println("      --log-level L    Log at level L (debug, info, warn, error) instead")
	fmt.Println("      --flash-size X   Flash size: 4MB, 8MB, 16MB, 32MB or any size")
	fmt.Println("      --config FILE    Config file (default ./.partkit.yaml or ~/.partkit/config.yaml)")
	fmt.Println("  -h, --help           Show this help message")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  partexplorer partitions.csv")
	fmt.Println("  partexplorer --flash-size 8MB partitions.csv")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'partctl' command instead.")
}
