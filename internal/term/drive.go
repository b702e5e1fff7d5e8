package term

import (
	"github.com/dshills/vt52/internal/keyboard"
	"github.com/dshills/vt52/internal/serial"
)

// Line-level drivers. These clock whole frames into the terminal while
// ticking it, so every component advances in lockstep with the line
// activity. cmd/vt52 and the package tests both feed input through them.

// Idle advances the terminal n ticks with all input lines at rest.
func (t *Terminal) Idle(n int) {
	for i := 0; i < n; i++ {
		t.Tick()
	}
}

// clockScancode shifts one 11-bit keyboard frame in, two ticks per bit with
// the sample taken on the falling clock edge.
func (t *Terminal) clockScancode(code byte) {
	for _, bit := range keyboard.FrameBits(code) {
		t.SetKeyboardLines(true, bit)
		t.Tick()
		t.SetKeyboardLines(false, bit)
		t.Tick()
	}
	t.SetKeyboardLines(true, true)
	t.Tick()
}

// PressKey clocks the make sequence for a key into the keyboard.
func (t *Terminal) PressKey(scancode byte, extended bool) {
	if extended {
		t.clockScancode(keyboard.ExtendedPrefix)
	}
	t.clockScancode(scancode)
}

// ReleaseKey clocks the break sequence for a key into the keyboard.
func (t *Terminal) ReleaseKey(scancode byte, extended bool) {
	if extended {
		t.clockScancode(keyboard.ExtendedPrefix)
	}
	t.clockScancode(keyboard.BreakPrefix)
	t.clockScancode(scancode)
}

// TypeKey presses and immediately releases a key.
func (t *Terminal) TypeKey(scancode byte, extended bool) {
	t.PressKey(scancode, extended)
	t.ReleaseKey(scancode, extended)
}

// FeedHostByte drives one framed byte onto the receive line, ticking the
// terminal through the whole frame, and returns the line to mark.
func (t *Terminal) FeedHostByte(b byte) {
	t.FeedHostLevels(serial.FrameLevels(t.framer.RX.Config(), b))
}

// FeedHostLevels drives raw per-tick levels onto the receive line.
func (t *Terminal) FeedHostLevels(levels []bool) {
	for _, level := range levels {
		t.SetHostLine(level)
		t.Tick()
	}
	t.SetHostLine(true)
}
