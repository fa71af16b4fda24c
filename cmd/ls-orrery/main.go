// Command ls-orrery is an interactive terminal viewer for celestial systems.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// ErrNoTerminal is reported when the interactive view has no terminal to
// draw on.
var ErrNoTerminal = errors.New("stdout is not a terminal; use --list or --frame for headless output")

// cliOptions holds the flags that select a mode rather than a setting.
type cliOptions struct {
	configPath string
	list       bool
	frame      bool
	frameSize  string
	frameAfter time.Duration
	version    bool
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"system":    config.KeySystem,
	"log-level": config.KeyLogLevel,
	"log-file":  config.KeyLogFile,
	"seed":      config.KeySeed,
	"fps":       config.KeyFPS,
	"stars":     config.KeyStars,
	"labels":    config.KeyLabels,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args and dispatches to a mode. It returns the process exit
// code so deferred cleanup runs before the process exits.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ls-orrery", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Parse flags
	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "Config file (yaml, toml or json)")
	fs.String("system", "solar", "Starting system (solar, proxima, mov)")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-file", "", "Write logs to this file (default: discard)")
	fs.Int64("seed", 0, "Random seed for the scene (0: time based)")
	fs.Int("fps", 30, "Frames per second")
	fs.Int("stars", 3000, "Background star count")
	fs.Bool("labels", false, "Label every body")
	fs.BoolVar(&opts.list, "list", false, "Print the catalog of every system and exit")
	fs.BoolVar(&opts.frame, "frame", false, "Render one frame to stdout and exit")
	fs.StringVar(&opts.frameSize, "frame-size", "100x30", "Canvas size for --frame, as COLSxROWS")
	fs.DurationVar(&opts.frameAfter, "frame-after", 0, "Advance the scene by this long before rendering --frame")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	cfg, err := config.Load(opts.configPath, setOverrides(fs))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Set up logging
	logger, closer, err := logging.Open(cfg.LogFile, cfg.Level())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	// Headless mode: no TUI
	if opts.list || opts.frame {
		if err := runHeadless(stdout, opts, cfg, logger); err != nil {
			logger.Error("headless: %v", err)
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Error("%v", ErrNoTerminal)
		fmt.Fprintf(stderr, "Error: %v\n", ErrNoTerminal)
		return 1
	}

	if err := runTUI(cfg, logger); err != nil {
		logger.Error("tui: %v", err)
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}

// setOverrides collects the config-backed flags set on the command line.
func setOverrides(fs *flag.FlagSet) map[string]interface{} {
	overrides := make(map[string]interface{})
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.(flag.Getter).Get()
		}
	})
	return overrides
}

func runTUI(cfg config.Config, logger *logging.Logger) error {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("signal received, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	session, err := state.New(cfg.Session(logger))
	if err != nil {
		return err
	}
	defer session.Close()

	model := ui.New(session, ui.Options{
		FrameInterval: cfg.FrameInterval(),
		SurfaceWidth:  cfg.SurfaceWidth,
		SurfaceHeight: cfg.SurfaceHeight,
		Labels:        cfg.Labels,
		Stars:         true,
		Seed:          cfg.Seed,
		Logger:        logger,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	logger.Info("%s starting on %s", version.String(), cfg.System)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// runHeadless handles the headless modes without starting the TUI.
func runHeadless(w io.Writer, opts cliOptions, cfg config.Config, logger *logging.Logger) error {
	if opts.list {
		if err := writeCatalog(w); err != nil {
			return err
		}
	}
	if opts.frame {
		cols, rows, err := parseSize(opts.frameSize)
		if err != nil {
			return err
		}
		color := false
		if f, ok := w.(*os.File); ok {
			color = term.IsTerminal(int(f.Fd()))
		}
		if opts.list {
			fmt.Fprintln(w)
		}
		return writeFrame(w, cfg, logger, frameOptions{
			cols:  cols,
			rows:  rows,
			after: opts.frameAfter,
			color: color,
		})
	}
	return nil
}
