// Package app runs the emulated terminal against a display and a host link:
// it owns the tick loop, translates host key events into keyboard frames,
// bridges the serial line, and rings the bell.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/vt52/internal/bell"
	"github.com/dshills/vt52/internal/config"
	"github.com/dshills/vt52/internal/term"
)

// ErrQuit signals a clean operator-requested exit.
var ErrQuit = errors.New("quit")

// framesPerSecond paces the run loop; each frame advances the terminal by
// TicksPerSecond/framesPerSecond ticks.
const framesPerSecond = 60

// Options come from the command line.
type Options struct {
	// ConfigPath is the TOML configuration file; empty uses defaults.
	ConfigPath string

	// PortName bridges the terminal's serial line to a host serial port
	// when non-empty.
	PortName string

	// PortBaud is the host port speed.
	PortBaud int

	// Headless skips the display and bridges raw stdin/stdout instead.
	Headless bool
}

// App ties the terminal to its display, host link, and bell.
type App struct {
	opts Options
	cfg  config.Config

	term   *term.Terminal
	ringer *bell.Ringer
	host   HostPort

	audio bool
	quit  chan struct{}
}

// New loads configuration and assembles the terminal.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	t, err := term.New(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		opts:   opts,
		cfg:    cfg,
		term:   t,
		ringer: bell.NewRinger(),
		quit:   make(chan struct{}),
	}

	if opts.PortName != "" {
		a.host, err = OpenPort(opts.PortName, opts.PortBaud)
		if err != nil {
			return nil, fmt.Errorf("opening host port: %w", err)
		}
	}
	return a, nil
}

// Run drives the terminal until the operator quits or the context is torn
// down via Shutdown.
func (a *App) Run() error {
	a.audio = a.ringer.Initialize() == nil

	if a.opts.Headless {
		return a.runHeadless()
	}
	return a.runDisplay()
}

// Shutdown releases the display, host port, and audio. Safe to call more
// than once and from a signal handler.
func (a *App) Shutdown() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

func (a *App) cleanup() {
	if a.host != nil {
		a.host.Close()
	}
	a.ringer.Cleanup()
}

// ticksPerFrame converts the configured tick rate to the frame budget.
func (a *App) ticksPerFrame() int {
	n := a.cfg.Timing.TicksPerSecond / framesPerSecond
	if n < 1 {
		n = 1
	}
	return n
}

// pumpHost moves pending bytes across the host link in both directions.
func (a *App) pumpHost() {
	if a.host == nil {
		// Unbridged: drain the transmit side so the keyboard never
		// stalls against a full shift register.
		for a.term.HostByteReady() {
			a.term.ReadHostByte()
		}
		return
	}
	for {
		b, ok := a.host.ReadByte()
		if !ok {
			break
		}
		a.term.FeedHostByte(b)
	}
	for a.term.HostByteReady() {
		a.host.WriteByte(a.term.ReadHostByte())
	}
}

// frameTicker returns the shared pacing ticker for both run modes.
func frameTicker() *time.Ticker {
	return time.NewTicker(time.Second / framesPerSecond)
}
