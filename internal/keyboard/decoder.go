package keyboard

import "github.com/dshills/vt52/internal/keymap"

// ESC is the escape byte prefixed to Escaped and meta-modified keys.
const ESC = 0x1B

// ctrlMask zeroes bits [6:5] of an output byte while control is held,
// turning letters into their control codes.
const ctrlMask = 0x9F

// Config holds the decoder's repeat timing, expressed in ticks.
type Config struct {
	// RepeatDelayTicks is the hold time before the first repeat (~500 ms).
	RepeatDelayTicks int

	// RepeatIntervalTicks is the spacing of subsequent repeats (~10 Hz).
	RepeatIntervalTicks int
}

// Decoder turns keyboard line activity into translated output bytes.
type Decoder struct {
	table  *keymap.Table
	config Config

	receiver frameReceiver
	clock    bool
	data     bool
	frameErr bool

	pendingBreak    bool
	pendingExtended bool
	mods            keymap.Modifier
	capsLock        bool

	out       byte
	outValid  bool
	second    byte
	secondSet bool

	repeatByte   byte
	repeatArmed  bool
	repeatFirst  bool
	repeatTicker int
}

// New returns a decoder translating through the given table.
func New(table *keymap.Table, config Config) *Decoder {
	return &Decoder{
		table:  table,
		config: config,
		clock:  true,
		data:   true,
		receiver: frameReceiver{
			prevClock: true,
		},
	}
}

// SetLines updates the sampled clock and data levels. Call before Tick.
func (d *Decoder) SetLines(clock, data bool) {
	d.clock = clock
	d.data = data
}

// Tick advances the decoder one tick.
func (d *Decoder) Tick() {
	// A pending second byte of an ESC sequence moves into the slot as soon
	// as the slot drains.
	if d.secondSet && !d.outValid {
		d.out = d.second
		d.outValid = true
		d.secondSet = false
	}

	if scancode, ok, frameErr := d.receiver.sample(d.clock, d.data); frameErr {
		d.frameErr = true
	} else if ok {
		d.handleScancode(scancode)
	}

	d.tickRepeat()
}

// handleScancode applies prefix bytes and dispatches complete key events.
func (d *Decoder) handleScancode(scancode byte) {
	switch scancode {
	case BreakPrefix:
		d.pendingBreak = true
		return
	case ExtendedPrefix:
		d.pendingExtended = true
		return
	}

	isBreak := d.pendingBreak
	isExtended := d.pendingExtended
	d.pendingBreak = false
	d.pendingExtended = false

	if isBreak {
		// Any key release cancels auto-repeat immediately.
		d.repeatArmed = false
	}

	entry := d.table.Lookup(isExtended, d.capsLock, d.mods.HasShift(), scancode)
	switch entry.Kind() {
	case keymap.KindModifier:
		if isBreak {
			d.mods = d.mods.Without(entry.Mask())
		} else {
			d.mods = d.mods.With(entry.Mask())
		}

	case keymap.KindCapsLock:
		if !isBreak {
			d.capsLock = !d.capsLock
		}

	case keymap.KindEscaped:
		if !isBreak {
			d.emitEscaped(entry.Byte())
		}

	case keymap.KindRegular:
		if !isBreak {
			d.emitRegular(entry.Byte())
		}
	}
}

// emitRegular emits a translated byte, ESC-prefixed when meta is held, and
// arms auto-repeat. Emission is dropped whole if the slot is occupied.
func (d *Decoder) emitRegular(b byte) {
	b = d.applyCtrl(b)
	if d.mods.HasMeta() {
		d.emitPair(ESC, b)
		return
	}
	if d.outValid || d.secondSet {
		return
	}
	d.out = b
	d.outValid = true
	d.armRepeat(b)
}

// emitEscaped emits ESC then the translated byte on the following tick.
func (d *Decoder) emitEscaped(b byte) {
	d.emitPair(ESC, d.applyCtrl(b))
}

func (d *Decoder) emitPair(first, second byte) {
	if d.outValid || d.secondSet {
		return
	}
	d.out = first
	d.outValid = true
	d.second = second
	d.secondSet = true
}

func (d *Decoder) applyCtrl(b byte) byte {
	if d.mods.HasCtrl() {
		return b & ctrlMask
	}
	return b
}

// armRepeat starts the repeat timer for a plain regular byte.
func (d *Decoder) armRepeat(b byte) {
	if d.config.RepeatDelayTicks <= 0 || d.config.RepeatIntervalTicks <= 0 {
		return
	}
	d.repeatByte = b
	d.repeatArmed = true
	d.repeatFirst = true
	d.repeatTicker = 0
}

// tickRepeat re-emits the held key once the delay elapses, but only into an
// empty output slot; a repeat never overwrites pending output.
func (d *Decoder) tickRepeat() {
	if !d.repeatArmed {
		return
	}
	d.repeatTicker++

	limit := d.config.RepeatIntervalTicks
	if d.repeatFirst {
		limit = d.config.RepeatDelayTicks
	}
	if d.repeatTicker < limit {
		return
	}
	d.repeatTicker = 0
	d.repeatFirst = false

	if !d.outValid && !d.secondSet {
		d.out = d.repeatByte
		d.outValid = true
	}
}

// OutputValid reports whether a byte is waiting in the output slot.
func (d *Decoder) OutputValid() bool {
	return d.outValid
}

// Output returns the pending byte. Only meaningful while OutputValid.
func (d *Decoder) Output() byte {
	return d.out
}

// ConsumeOutput drains the output slot.
func (d *Decoder) ConsumeOutput() {
	d.outValid = false
}

// FrameError reports the sticky frame-error observability flag.
func (d *Decoder) FrameError() bool {
	return d.frameErr
}

// ClearFrameError resets the observability flag.
func (d *Decoder) ClearFrameError() {
	d.frameErr = false
}

// Modifiers returns the live modifier state.
func (d *Decoder) Modifiers() keymap.Modifier {
	return d.mods
}

// CapsLock returns the caps-lock latch.
func (d *Decoder) CapsLock() bool {
	return d.capsLock
}

// Reset restores the decoder to power-on state: no modifiers, caps lock off,
// empty output, repeat disarmed.
func (d *Decoder) Reset() {
	d.receiver.reset()
	d.frameErr = false
	d.pendingBreak = false
	d.pendingExtended = false
	d.mods = keymap.ModNone
	d.capsLock = false
	d.outValid = false
	d.secondSet = false
	d.repeatArmed = false
}
