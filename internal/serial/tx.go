package serial

// txState identifies the transmitter's position within a frame.
type txState uint8

const (
	txIdle txState = iota
	txStart
	txData
	txParity
	txStop
)

// Transmitter shifts bytes onto the line LSB-first, one bit per configured
// divisor period. The line idles high; ready is asserted only in the idle
// state, so at most one byte is in flight.
type Transmitter struct {
	config Config

	state     txState
	line      bool
	shift     byte
	bitIndex  int
	parityAcc bool
	tick      int
}

// NewTransmitter returns an idle transmitter with the line at mark.
func NewTransmitter(config Config) *Transmitter {
	return &Transmitter{config: config, line: true}
}

// Config returns the transmit framing parameters.
func (t *Transmitter) Config() Config {
	return t.config
}

// Ready reports whether a new byte can be loaded.
func (t *Transmitter) Ready() bool {
	return t.state == txIdle
}

// Line returns the current output level.
func (t *Transmitter) Line() bool {
	return t.line
}

// Load latches a byte for transmission. It returns false, changing nothing,
// if a frame is already in flight.
func (t *Transmitter) Load(b byte) bool {
	if t.state != txIdle {
		return false
	}
	t.shift = b & t.config.dataMask()
	t.bitIndex = 0
	t.parityAcc = t.config.paritySeed()
	t.state = txStart
	t.tick = 0
	t.line = false
	return true
}

// Reset aborts any frame in flight and returns the line to mark.
func (t *Transmitter) Reset() {
	t.state = txIdle
	t.line = true
	t.tick = 0
}

// Tick advances the transmitter one tick.
func (t *Transmitter) Tick() {
	if t.state == txIdle {
		return
	}

	t.tick++
	switch t.state {
	case txStart:
		if t.tick >= t.config.Divisor {
			t.nextDataBit()
		}

	case txData:
		if t.tick >= t.config.Divisor {
			if t.bitIndex >= t.config.CharBits {
				t.beginTail()
			} else {
				t.nextDataBit()
			}
		}

	case txParity:
		if t.tick >= t.config.Divisor {
			t.state = txStop
			t.tick = 0
			t.line = true
		}

	case txStop:
		if t.tick >= t.config.stopTicks() {
			t.state = txIdle
			t.tick = 0
			t.line = true
		}
	}
}

// nextDataBit drives the next data bit onto the line, folding it into the
// running parity.
func (t *Transmitter) nextDataBit() {
	bit := t.shift&(1<<t.bitIndex) != 0
	t.line = bit
	if bit {
		t.parityAcc = !t.parityAcc
	}
	t.bitIndex++
	t.state = txData
	t.tick = 0
}

// beginTail moves past the data bits into the parity bit or stop period.
func (t *Transmitter) beginTail() {
	t.tick = 0
	if t.config.Parity != ParityNone {
		t.state = txParity
		t.line = t.parityAcc
		return
	}
	t.state = txStop
	t.line = true
}
