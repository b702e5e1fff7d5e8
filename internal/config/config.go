// Package config loads the terminal's TOML configuration file and converts
// it into the component-level settings: grid dimensions, tick rate, serial
// framing per direction, keyboard repeat timing, escape timeouts, and the
// keymap source.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/vt52/internal/interp"
	"github.com/dshills/vt52/internal/keyboard"
	"github.com/dshills/vt52/internal/keymap"
	"github.com/dshills/vt52/internal/serial"
)

// Errors returned by configuration loading and validation.
var (
	// ErrTickRate indicates a non-positive tick rate.
	ErrTickRate = errors.New("ticks_per_second must be positive")

	// ErrDimensions indicates an unusable grid size.
	ErrDimensions = errors.New("screen must be at least 2x2")

	// ErrKeymapFormat indicates a keymap path with an unknown extension.
	ErrKeymapFormat = errors.New("keymap file must be .json or .lua")
)

// Config is the on-disk configuration. Use DefaultConfig for the built-in
// values; Load layers a TOML file over them.
type Config struct {
	Screen   ScreenConfig   `toml:"screen"`
	Timing   TimingConfig   `toml:"timing"`
	Keyboard KeyboardConfig `toml:"keyboard"`
	Serial   SerialSection  `toml:"serial"`
}

// ScreenConfig sets the character grid dimensions.
type ScreenConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// TimingConfig sets the logical tick rate and escape-sequence timeouts.
type TimingConfig struct {
	// TicksPerSecond is the logical tick rate all millisecond-denominated
	// settings are converted with.
	TicksPerSecond int `toml:"ticks_per_second"`

	// KeyboardTimeoutMS bounds keyboard-origin escape sequences.
	KeyboardTimeoutMS int `toml:"keyboard_timeout_ms"`

	// SerialTimeoutMS bounds serial-origin escape sequences.
	SerialTimeoutMS int `toml:"serial_timeout_ms"`
}

// KeyboardConfig sets repeat timing and the keymap source.
type KeyboardConfig struct {
	RepeatDelayMS    int `toml:"repeat_delay_ms"`
	RepeatIntervalMS int `toml:"repeat_interval_ms"`

	// Keymap is the path of a .json or .lua keymap; empty uses the
	// built-in US layout.
	Keymap string `toml:"keymap"`
}

// SerialSection holds the per-direction framing parameters.
type SerialSection struct {
	TX LineConfig `toml:"tx"`
	RX LineConfig `toml:"rx"`
}

// LineConfig is the TOML form of one direction's serial.Config.
type LineConfig struct {
	CharBits int    `toml:"char_bits"`
	Parity   string `toml:"parity"`
	StopBits string `toml:"stop_bits"`
	Divisor  int    `toml:"divisor"`
}

// DefaultConfig returns the built-in settings: a 24x80 grid, 10000 ticks per
// second, 8N1 at 16 ticks/bit both ways, 500 ms/10 Hz repeat, and the
// 5 s / 1 s escape timeouts.
func DefaultConfig() Config {
	line := LineConfig{CharBits: 8, Parity: "none", StopBits: "1", Divisor: 16}
	return Config{
		Screen: ScreenConfig{Rows: 24, Cols: 80},
		Timing: TimingConfig{
			TicksPerSecond:    10000,
			KeyboardTimeoutMS: 5000,
			SerialTimeoutMS:   1000,
		},
		Keyboard: KeyboardConfig{
			RepeatDelayMS:    500,
			RepeatIntervalMS: 100,
		},
		Serial: SerialSection{TX: line, RX: line},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config file %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the settings for usable values.
func (c Config) Validate() error {
	if c.Screen.Rows < 2 || c.Screen.Cols < 2 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, c.Screen.Rows, c.Screen.Cols)
	}
	if c.Timing.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: %d", ErrTickRate, c.Timing.TicksPerSecond)
	}
	if _, err := c.TXConfig(); err != nil {
		return err
	}
	if _, err := c.RXConfig(); err != nil {
		return err
	}
	if c.Keyboard.Keymap != "" {
		switch filepath.Ext(c.Keyboard.Keymap) {
		case ".json", ".lua":
		default:
			return fmt.Errorf("%w: %s", ErrKeymapFormat, c.Keyboard.Keymap)
		}
	}
	return nil
}

// Ticks converts a millisecond duration to ticks, rounding up to at least
// one tick for any positive duration.
func (c Config) Ticks(ms int) int {
	if ms <= 0 {
		return 0
	}
	ticks := ms * c.Timing.TicksPerSecond / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// TXConfig converts the transmit line section.
func (c Config) TXConfig() (serial.Config, error) {
	return c.Serial.TX.convert("serial.tx")
}

// RXConfig converts the receive line section.
func (c Config) RXConfig() (serial.Config, error) {
	return c.Serial.RX.convert("serial.rx")
}

func (l LineConfig) convert(section string) (serial.Config, error) {
	parity, err := serial.ParseParity(l.Parity)
	if err != nil {
		return serial.Config{}, fmt.Errorf("%s: %w", section, err)
	}
	stop, err := serial.ParseStopBits(l.StopBits)
	if err != nil {
		return serial.Config{}, fmt.Errorf("%s: %w", section, err)
	}
	sc := serial.Config{
		CharBits: l.CharBits,
		Parity:   parity,
		StopBits: stop,
		Divisor:  l.Divisor,
	}
	if err := sc.Validate(); err != nil {
		return serial.Config{}, fmt.Errorf("%s: %w", section, err)
	}
	return sc, nil
}

// DecoderConfig converts the keyboard repeat settings.
func (c Config) DecoderConfig() keyboard.Config {
	return keyboard.Config{
		RepeatDelayTicks:    c.Ticks(c.Keyboard.RepeatDelayMS),
		RepeatIntervalTicks: c.Ticks(c.Keyboard.RepeatIntervalMS),
	}
}

// InterpConfig converts the escape-sequence timeouts.
func (c Config) InterpConfig() interp.Config {
	return interp.Config{
		KeyboardTimeoutTicks: c.Ticks(c.Timing.KeyboardTimeoutMS),
		SerialTimeoutTicks:   c.Ticks(c.Timing.SerialTimeoutMS),
	}
}

// LoadKeymap loads the configured keymap table, falling back to the
// built-in US layout when no path is set.
func (c Config) LoadKeymap() (*keymap.Table, error) {
	switch {
	case c.Keyboard.Keymap == "":
		return keymap.Default(), nil
	case filepath.Ext(c.Keyboard.Keymap) == ".lua":
		return keymap.LoadLuaFile(c.Keyboard.Keymap)
	default:
		return keymap.LoadFile(c.Keyboard.Keymap)
	}
}
