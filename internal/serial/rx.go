package serial

// ErrorFlags are the receiver's latched fault indicators. They clear only
// when the received byte is explicitly consumed with ReadByte.
type ErrorFlags struct {
	// Overrun is set when a frame completes while the previous byte is
	// still unread; the new byte is discarded.
	Overrun bool

	// Framing is set when the line is low where a stop bit is expected.
	Framing bool

	// Parity is set when the received parity bit does not match the data.
	// A parity fault does not block delivery of the byte.
	Parity bool
}

// Any reports whether any fault is latched.
func (f ErrorFlags) Any() bool {
	return f.Overrun || f.Framing || f.Parity
}

// rxState identifies the receiver's position within a frame.
type rxState uint8

const (
	rxIdle rxState = iota
	rxStart
	rxData
	rxParity
	rxStop
)

// Receiver samples the line once per tick and reassembles frames. The start
// bit is confirmed at three quarters of a bit period; data and parity bits
// are sampled at bit-period midpoints; the stop bit is checked at its
// midpoint, after which the receiver returns to idle so it can catch the
// next start edge immediately. Extra configured stop time only paces the
// transmitter.
type Receiver struct {
	config Config

	state     rxState
	line      bool
	tick      int
	bitIndex  int
	shift     byte
	parityAcc bool
	parityBad bool

	data  byte
	ready bool
	flags ErrorFlags
}

// NewReceiver returns an idle receiver assuming the line at mark.
func NewReceiver(config Config) *Receiver {
	return &Receiver{config: config, line: true}
}

// Config returns the receive framing parameters.
func (r *Receiver) Config() Config {
	return r.config
}

// SetLine updates the sampled line level. Call before Tick each tick.
func (r *Receiver) SetLine(level bool) {
	r.line = level
}

// Ready reports whether a received byte is waiting to be read.
func (r *Receiver) Ready() bool {
	return r.ready
}

// Flags returns the latched fault indicators without clearing them.
func (r *Receiver) Flags() ErrorFlags {
	return r.flags
}

// Peek returns the waiting byte without consuming it or clearing the fault
// latches. Only meaningful while Ready.
func (r *Receiver) Peek() byte {
	return r.data
}

// ReadByte consumes the received byte, returning it together with the fault
// flags latched since the previous read, and clears both.
func (r *Receiver) ReadByte() (byte, ErrorFlags) {
	b, f := r.data, r.flags
	r.ready = false
	r.flags = ErrorFlags{}
	return b, f
}

// Reset aborts any frame in progress and clears the byte and fault latches.
func (r *Receiver) Reset() {
	r.state = rxIdle
	r.tick = 0
	r.ready = false
	r.flags = ErrorFlags{}
}

// Tick advances the receiver one tick.
func (r *Receiver) Tick() {
	switch r.state {
	case rxIdle:
		if !r.line {
			r.state = rxStart
			r.tick = 0
		}

	case rxStart:
		r.tick++
		if r.tick == r.config.Divisor*3/4 && r.line {
			// False start; the line bounced back to mark.
			r.state = rxIdle
			return
		}
		if r.tick >= r.config.Divisor {
			r.state = rxData
			r.tick = 0
			r.bitIndex = 0
			r.shift = 0
			r.parityAcc = r.config.paritySeed()
			r.parityBad = false
		}

	case rxData:
		r.tick++
		if r.tick == r.config.Divisor/2 {
			if r.line {
				r.shift |= 1 << r.bitIndex
				r.parityAcc = !r.parityAcc
			}
		}
		if r.tick >= r.config.Divisor {
			r.tick = 0
			r.bitIndex++
			if r.bitIndex >= r.config.CharBits {
				if r.config.Parity != ParityNone {
					r.state = rxParity
				} else {
					r.state = rxStop
				}
			}
		}

	case rxParity:
		r.tick++
		if r.tick == r.config.Divisor/2 {
			// After folding in the seed and every data bit, a correct
			// received parity bit equals the accumulator.
			r.parityBad = r.line != r.parityAcc
		}
		if r.tick >= r.config.Divisor {
			r.state = rxStop
			r.tick = 0
		}

	case rxStop:
		r.tick++
		if r.tick >= r.config.Divisor/2 {
			r.complete(r.line)
		}
	}
}

// complete latches the finished frame and returns to idle.
func (r *Receiver) complete(stopLevel bool) {
	if !stopLevel {
		r.flags.Framing = true
	}
	if r.parityBad {
		r.flags.Parity = true
	}
	if r.ready {
		// Previous byte still unread; keep it and drop this frame.
		r.flags.Overrun = true
	} else {
		r.data = r.shift
		r.ready = true
	}
	r.state = rxIdle
	r.tick = 0
}
