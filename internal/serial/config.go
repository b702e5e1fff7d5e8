package serial

import (
	"errors"
	"fmt"
)

// Errors returned by configuration validation.
var (
	// ErrCharBits indicates a character length outside [5, 8].
	ErrCharBits = errors.New("character length must be 5-8 bits")

	// ErrDivisor indicates a non-positive baud divisor.
	ErrDivisor = errors.New("baud divisor must be at least 4")

	// ErrParity indicates an unrecognized parity mode.
	ErrParity = errors.New("unknown parity mode")

	// ErrStopBits indicates an unrecognized stop-bit count.
	ErrStopBits = errors.New("unknown stop-bit count")
)

// Parity selects the parity bit mode.
type Parity uint8

const (
	// ParityNone omits the parity bit.
	ParityNone Parity = iota

	// ParityOdd makes the data+parity bit population odd.
	ParityOdd

	// ParityEven makes the data+parity bit population even.
	ParityEven
)

// String returns the parity mode name.
func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return "unknown"
	}
}

// ParseParity converts a config-file string to a Parity.
func ParseParity(s string) (Parity, error) {
	switch s {
	case "none", "":
		return ParityNone, nil
	case "odd":
		return ParityOdd, nil
	case "even":
		return ParityEven, nil
	default:
		return ParityNone, fmt.Errorf("%w: %q", ErrParity, s)
	}
}

// StopBits selects the stop-bit duration.
type StopBits uint8

const (
	// Stop1 is a single stop bit.
	Stop1 StopBits = iota

	// Stop1x5 is one and a half stop bits.
	Stop1x5

	// Stop2 is two stop bits.
	Stop2
)

// String returns the stop-bit count as written in config files.
func (s StopBits) String() string {
	switch s {
	case Stop1:
		return "1"
	case Stop1x5:
		return "1.5"
	case Stop2:
		return "2"
	default:
		return "unknown"
	}
}

// ParseStopBits converts a config-file string to a StopBits.
func ParseStopBits(s string) (StopBits, error) {
	switch s {
	case "1", "":
		return Stop1, nil
	case "1.5":
		return Stop1x5, nil
	case "2":
		return Stop2, nil
	default:
		return Stop1, fmt.Errorf("%w: %q", ErrStopBits, s)
	}
}

// Config holds the framing parameters for one direction.
type Config struct {
	// CharBits is the character length, 5-8 data bits.
	CharBits int

	// Parity is the parity mode.
	Parity Parity

	// StopBits is the stop-bit duration.
	StopBits StopBits

	// Divisor is the number of ticks per bit period.
	Divisor int
}

// DefaultConfig returns 8 data bits, no parity, one stop bit, 16 ticks/bit.
func DefaultConfig() Config {
	return Config{CharBits: 8, Parity: ParityNone, StopBits: Stop1, Divisor: 16}
}

// Validate checks the configuration for usable values. The divisor floor of
// 4 keeps the receiver's 3/4-bit and mid-bit sample points distinct.
func (c Config) Validate() error {
	if c.CharBits < 5 || c.CharBits > 8 {
		return fmt.Errorf("%w: %d", ErrCharBits, c.CharBits)
	}
	if c.Divisor < 4 {
		return fmt.Errorf("%w: %d", ErrDivisor, c.Divisor)
	}
	if c.Parity > ParityEven {
		return ErrParity
	}
	if c.StopBits > Stop2 {
		return ErrStopBits
	}
	return nil
}

// stopTicks returns the transmit duration of the stop period in ticks.
func (c Config) stopTicks() int {
	switch c.StopBits {
	case Stop1x5:
		return c.Divisor + c.Divisor/2
	case Stop2:
		return 2 * c.Divisor
	default:
		return c.Divisor
	}
}

// dataMask returns the mask covering CharBits data bits.
func (c Config) dataMask() byte {
	return byte(1<<c.CharBits) - 1
}

// paritySeed returns the initial parity accumulator value: odd parity is
// seeded 1, even parity 0, then XORed with each data bit.
func (c Config) paritySeed() bool {
	return c.Parity == ParityOdd
}

// FrameTicks returns the total tick count of one frame, start bit through
// the full stop period. Used by line drivers to pace whole frames.
func (c Config) FrameTicks() int {
	n := c.Divisor + c.CharBits*c.Divisor + c.stopTicks()
	if c.Parity != ParityNone {
		n += c.Divisor
	}
	return n
}
