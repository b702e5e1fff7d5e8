package term

import (
	"fmt"

	"github.com/dshills/vt52/internal/arbiter"
	"github.com/dshills/vt52/internal/config"
	"github.com/dshills/vt52/internal/interp"
	"github.com/dshills/vt52/internal/keyboard"
	"github.com/dshills/vt52/internal/keymap"
	"github.com/dshills/vt52/internal/screen"
	"github.com/dshills/vt52/internal/serial"
)

// Terminal wires the components together and advances them in a fixed order
// each tick: keyboard and serial first, then the arbiter, then the
// interpreter, then the grid.
type Terminal struct {
	keyboard *keyboard.Decoder
	framer   *serial.Framer
	arb      *arbiter.Arbiter
	interp   *interp.Interpreter
	grid     *screen.Grid

	// monitor snoops the transmit line so callers can read the decoded
	// byte stream the terminal sends to the host.
	monitor *serial.Receiver

	host hostProducer
}

// hostProducer adapts the serial receiver to the arbiter's producer
// interface. The byte stays latched in the receiver until the arbiter
// accepts it, so a frame completing in the meantime is a true overrun.
// Fault flags travel with the byte and accumulate in the terminal's latch.
type hostProducer struct {
	rx    *serial.Receiver
	flags serial.ErrorFlags
}

func (h *hostProducer) OutputValid() bool { return h.rx.Ready() }
func (h *hostProducer) Output() byte      { return h.rx.Peek() }

func (h *hostProducer) ConsumeOutput() {
	_, f := h.rx.ReadByte()
	h.flags.Overrun = h.flags.Overrun || f.Overrun
	h.flags.Framing = h.flags.Framing || f.Framing
	h.flags.Parity = h.flags.Parity || f.Parity
}

// keyProducer gates keyboard output on the transmitter so every keystroke is
// echoed to the host: the arbiter sees a byte only when the transmitter can
// take a copy, and accepting it loads the transmit shift register in the
// same tick.
type keyProducer struct {
	dec *keyboard.Decoder
	tx  *serial.Transmitter
}

func (k *keyProducer) OutputValid() bool { return k.dec.OutputValid() && k.tx.Ready() }
func (k *keyProducer) Output() byte      { return k.dec.Output() }

func (k *keyProducer) ConsumeOutput() {
	k.tx.Load(k.dec.Output())
	k.dec.ConsumeOutput()
}

// New builds a terminal from the given configuration.
func New(cfg config.Config) (*Terminal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := cfg.LoadKeymap()
	if err != nil {
		return nil, fmt.Errorf("loading keymap: %w", err)
	}

	txConfig, err := cfg.TXConfig()
	if err != nil {
		return nil, err
	}
	rxConfig, err := cfg.RXConfig()
	if err != nil {
		return nil, err
	}
	framer, err := serial.NewFramer(txConfig, rxConfig)
	if err != nil {
		return nil, err
	}

	grid, err := screen.New(cfg.Screen.Rows, cfg.Screen.Cols)
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		keyboard: keyboard.New(table, cfg.DecoderConfig()),
		framer:   framer,
		interp:   interp.New(grid, cfg.InterpConfig()),
		grid:     grid,
		monitor:  serial.NewReceiver(txConfig),
	}
	t.host.rx = framer.RX
	t.arb = arbiter.New(
		&keyProducer{dec: t.keyboard, tx: framer.TX},
		&t.host,
	)
	return t, nil
}

// Tick advances the terminal one tick.
func (t *Terminal) Tick() {
	t.keyboard.Tick()
	t.framer.Tick()

	t.monitor.SetLine(t.framer.TX.Line())
	t.monitor.Tick()

	t.arb.Tick()

	if t.arb.Valid() && t.interp.Ready() {
		t.interp.Consume(t.arb.Byte(), t.arb.Origin())
		t.arb.Accept()
	}
	t.interp.Tick()
	t.grid.Tick()
}

// Reset restores power-on state across all components. The fault latch and
// any bytes in flight are discarded.
func (t *Terminal) Reset() {
	t.keyboard.Reset()
	t.framer.Reset()
	t.monitor.Reset()
	t.arb.Reset()
	t.interp.Reset()
	t.grid.Reset()
	t.host.flags = serial.ErrorFlags{}
}

// SetKeyboardLines updates the keyboard clock and data levels sampled on the
// next tick.
func (t *Terminal) SetKeyboardLines(clock, data bool) {
	t.keyboard.SetLines(clock, data)
}

// SetHostLine updates the receive line level sampled on the next tick.
func (t *Terminal) SetHostLine(level bool) {
	t.framer.RX.SetLine(level)
}

// TXLine returns the current transmit line level, for callers driving a
// physical or emulated host link at the bit level.
func (t *Terminal) TXLine() bool {
	return t.framer.TX.Line()
}

// HostByteReady reports whether a decoded byte from the transmit line is
// waiting to be collected.
func (t *Terminal) HostByteReady() bool {
	return t.monitor.Ready()
}

// ReadHostByte consumes the next byte the terminal sent to the host.
func (t *Terminal) ReadHostByte() byte {
	b, _ := t.monitor.ReadByte()
	return b
}

// OnBell registers a handler invoked when a BEL control byte is interpreted.
func (t *Terminal) OnBell(fn func()) {
	t.interp.OnBell(fn)
}

// Cursor returns the interpreter's cursor position.
func (t *Terminal) Cursor() (row, col int) {
	return t.interp.Cursor()
}

// State returns the interpreter's current state.
func (t *Terminal) State() interp.State {
	return t.interp.State()
}

// Snapshot copies the grid contents.
func (t *Terminal) Snapshot() screen.Snapshot {
	return t.grid.Snapshot()
}

// Modifiers returns the keyboard's live modifier state.
func (t *Terminal) Modifiers() keymap.Modifier {
	return t.keyboard.Modifiers()
}

// CapsLock returns the keyboard's caps-lock latch.
func (t *Terminal) CapsLock() bool {
	return t.keyboard.CapsLock()
}

// ErrorFlags returns the receive faults latched since the last clear,
// including faults attached to bytes already consumed by the arbiter.
func (t *Terminal) ErrorFlags() serial.ErrorFlags {
	live := t.framer.RX.Flags()
	return serial.ErrorFlags{
		Overrun: t.host.flags.Overrun || live.Overrun,
		Framing: t.host.flags.Framing || live.Framing,
		Parity:  t.host.flags.Parity || live.Parity,
	}
}

// ClearErrorFlags resets the accumulated receive fault latch. Faults still
// attached to an unread byte clear when that byte is consumed.
func (t *Terminal) ClearErrorFlags() {
	t.host.flags = serial.ErrorFlags{}
}

// KeyboardFrameError reports the keyboard's sticky frame-error flag.
func (t *Terminal) KeyboardFrameError() bool {
	return t.keyboard.FrameError()
}

// ClearKeyboardFrameError resets the keyboard frame-error flag.
func (t *Terminal) ClearKeyboardFrameError() {
	t.keyboard.ClearFrameError()
}
