// Package main is the entry point for fractalterm.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/fractalterm/internal/app"
	"github.com/dshills/fractalterm/internal/config"
	"github.com/dshills/fractalterm/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Headless size used when stdout is not a terminal and no size is given.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

type cliOptions struct {
	app      app.Options
	headless app.HeadlessOptions
	render   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, ok := parseFlags(args, stderr)
	if !ok {
		return code
	}

	isTTY := isTerminal(os.Stdout)
	if opts.render || !isTTY {
		return runHeadless(opts, stdout, stderr, isTTY)
	}
	return runInteractive(opts, stderr)
}

func runInteractive(opts cliOptions, stderr io.Writer) int {
	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(terminal); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runHeadless(opts cliOptions, stdout, stderr io.Writer, isTTY bool) int {
	path := opts.app.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	h := opts.headless
	h.Julia = opts.app.Julia
	h.Width, h.Height = headlessSize(h.Width, h.Height, isTTY)

	if err := app.RenderHeadless(cfg, h, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// headlessSize fills unset dimensions from the terminal, leaving a row for
// the shell prompt, or from the fallback size.
func headlessSize(w, h int, isTTY bool) (int, int) {
	if w > 0 && h > 0 {
		return w, h
	}
	tw, th := fallbackWidth, fallbackHeight
	if isTTY {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 && rows > 1 {
			tw, th = cols, rows-1
		}
	}
	if w <= 0 {
		w = tw
	}
	if h <= 0 {
		h = th
	}
	return w, h
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// parseFlags parses args. When ok is false the process should exit with
// code.
func parseFlags(args []string, stderr io.Writer) (opts cliOptions, code int, ok bool) {
	fs := flag.NewFlagSet("fractalterm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion, showHelp, noWatch bool

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&opts.app.Julia, "julia", false, "Start on the Julia view")
	fs.BoolVar(&opts.app.Julia, "j", false, "Start on the Julia view (shorthand)")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.app.LogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&noWatch, "no-watch", false, "Do not reload the config file on change")

	fs.BoolVar(&opts.render, "render", false, "Print frames as text instead of running interactively")
	fs.IntVar(&opts.headless.Width, "width", 0, "Headless width in cells (default: terminal width)")
	fs.IntVar(&opts.headless.Height, "height", 0, "Headless height in cells (default: terminal height)")
	fs.IntVar(&opts.headless.Frames, "frames", 0, "Headless frames to animate before printing")
	fs.StringVar(&opts.headless.POI, "poi", "", "Headless point of interest to tour to, by key 1-10 or name")
	fs.BoolVar(&opts.headless.Histogram, "histogram", false, "Headless: plot the escape histogram")
	fs.StringVar(&opts.headless.PNGPath, "png", "", "Headless: also write the frame as a PNG")

	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "fractalterm - Mandelbrot and Julia explorer for the terminal\n\n")
		fmt.Fprintf(stderr, "Usage: fractalterm [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fractalterm                          Explore interactively\n")
		fmt.Fprintf(stderr, "  fractalterm -j                       Start on the Julia set\n")
		fmt.Fprintf(stderr, "  fractalterm -render -poi 3 -frames 300 -histogram\n")
		fmt.Fprintf(stderr, "  fractalterm -render -j -poi rabbit -frames 120\n")
		fmt.Fprintf(stderr, "  fractalterm -render -width 160 -height 50 -png out.png\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, false
		}
		return opts, 2, false
	}

	if showHelp {
		fs.Usage()
		return opts, 0, false
	}
	if showVersion {
		fmt.Fprintf(stderr, "fractalterm %s\n", version)
		fmt.Fprintf(stderr, "Commit: %s\n", commit)
		fmt.Fprintf(stderr, "Built: %s\n", date)
		return opts, 0, false
	}

	switch opts.app.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
		return opts, 1, false
	}
	if opts.headless.Frames < 0 {
		fmt.Fprintf(stderr, "Error: -frames must not be negative\n")
		return opts, 1, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments %v\n", fs.Args())
		return opts, 2, false
	}

	opts.app.Watch = !noWatch
	return opts, 0, true
}
