// Package main is the entry point for the vt52 terminal emulator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/vt52/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.PortName, "port", "", "Host serial port to bridge (e.g. /dev/ttyUSB0)")
	flag.IntVar(&opts.PortBaud, "baud", 9600, "Host serial port speed")
	flag.BoolVar(&opts.Headless, "headless", false, "Bridge raw stdin/stdout instead of opening a display")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vt52 - VT52 terminal emulator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vt52 [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vt52                          Local mode, built-in layout\n")
		fmt.Fprintf(os.Stderr, "  vt52 -port /dev/ttyUSB0       Bridge a host serial port\n")
		fmt.Fprintf(os.Stderr, "  vt52 -headless < script.txt   Interpret a byte stream\n")
		fmt.Fprintf(os.Stderr, "  vt52 -c vt52.toml             Custom framing and keymap\n")
		fmt.Fprintf(os.Stderr, "\nKeys: Ctrl+Q quits the display; Ctrl+] ends a headless session.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("vt52 %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.Headless && opts.PortName != "" {
		fmt.Fprintf(os.Stderr, "Error: -headless and -port are mutually exclusive\n")
		os.Exit(1)
	}

	return opts
}
