package serial

import "fmt"

// Framer pairs the two directions of one serial line. The transmit and
// receive sides run independent state machines and may be configured with
// different framing parameters.
type Framer struct {
	TX *Transmitter
	RX *Receiver
}

// NewFramer validates both configurations and returns the framer.
func NewFramer(txConfig, rxConfig Config) (*Framer, error) {
	if err := txConfig.Validate(); err != nil {
		return nil, fmt.Errorf("tx config: %w", err)
	}
	if err := rxConfig.Validate(); err != nil {
		return nil, fmt.Errorf("rx config: %w", err)
	}
	return &Framer{
		TX: NewTransmitter(txConfig),
		RX: NewReceiver(rxConfig),
	}, nil
}

// Tick advances both directions one tick.
func (f *Framer) Tick() {
	f.TX.Tick()
	f.RX.Tick()
}

// Reset aborts frames in flight in both directions.
func (f *Framer) Reset() {
	f.TX.Reset()
	f.RX.Reset()
}

// FrameLevels returns the per-tick line levels of one complete frame of b
// under the given configuration: start bit, data bits LSB-first, optional
// parity, and the full stop period. Line drivers feed these levels to a
// Receiver one tick at a time; tests corrupt individual spans to inject
// faults.
func FrameLevels(config Config, b byte) []bool {
	levels := make([]bool, 0, config.FrameTicks())

	hold := func(level bool, ticks int) {
		for i := 0; i < ticks; i++ {
			levels = append(levels, level)
		}
	}

	hold(false, config.Divisor)

	parity := config.paritySeed()
	for i := 0; i < config.CharBits; i++ {
		bit := b&(1<<i) != 0
		if bit {
			parity = !parity
		}
		hold(bit, config.Divisor)
	}

	if config.Parity != ParityNone {
		hold(parity, config.Divisor)
	}

	hold(true, config.stopTicks())
	return levels
}
