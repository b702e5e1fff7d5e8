package keyboard

// Scancode protocol constants.
const (
	// BreakPrefix marks the following scancode as a key release.
	BreakPrefix = 0xF0

	// ExtendedPrefix marks the following scancode as a two-byte key.
	ExtendedPrefix = 0xE0

	// frameBits is the length of one keyboard frame:
	// start + 8 data + odd parity + stop.
	frameBits = 11
)

// FrameBits returns the 11 data-line levels of one well-formed frame for the
// given scancode, in transmission order. Tests and line drivers clock these
// levels into the decoder; corrupting individual levels injects frame faults.
func FrameBits(scancode byte) []bool {
	bits := make([]bool, 0, frameBits)
	bits = append(bits, false) // start

	ones := 0
	for i := 0; i < 8; i++ {
		bit := scancode&(1<<i) != 0
		if bit {
			ones++
		}
		bits = append(bits, bit)
	}

	bits = append(bits, ones%2 == 0) // odd parity
	bits = append(bits, true)        // stop
	return bits
}

// frameReceiver reassembles scancode bytes from the clock and data lines.
type frameReceiver struct {
	prevClock bool
	bits      int
	shift     uint16
}

// sample processes one tick's line levels. It returns (scancode, true) when
// a valid frame completes. Invalid frames report through the returned error
// flag and are dropped; the receiver then waits for the next start bit.
func (fr *frameReceiver) sample(clock, data bool) (scancode byte, ok bool, frameErr bool) {
	falling := fr.prevClock && !clock
	fr.prevClock = clock
	if !falling {
		return 0, false, false
	}

	if fr.bits == 0 && data {
		// Still idle; a frame begins only on a low start bit.
		return 0, false, false
	}

	if data {
		fr.shift |= 1 << fr.bits
	}
	fr.bits++
	if fr.bits < frameBits {
		return 0, false, false
	}

	frame := fr.shift
	fr.bits = 0
	fr.shift = 0

	start := frame&1 != 0
	stop := frame&(1<<10) != 0
	data8 := byte(frame >> 1)
	parity := frame&(1<<9) != 0

	ones := 0
	for i := 0; i < 8; i++ {
		if data8&(1<<i) != 0 {
			ones++
		}
	}
	if parity {
		ones++
	}

	if start || !stop || ones%2 == 0 {
		return 0, false, true
	}
	return data8, true, false
}

// reset returns the receiver to idle, dropping any partial frame.
func (fr *frameReceiver) reset() {
	fr.bits = 0
	fr.shift = 0
}
