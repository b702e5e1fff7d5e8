package keyboard

import (
	"testing"

	"github.com/dshills/vt52/internal/keymap"
)

// testConfig keeps repeat far away unless a test wants it.
var testConfig = Config{RepeatDelayTicks: 100000, RepeatIntervalTicks: 100000}

func newTestDecoder() *Decoder {
	return New(keymap.Default(), testConfig)
}

// clockBits drives one line level per clock cycle: clock high then low, two
// ticks per bit, sampling on the falling edge.
func clockBits(d *Decoder, bits []bool) {
	for _, bit := range bits {
		d.SetLines(true, bit)
		d.Tick()
		d.SetLines(false, bit)
		d.Tick()
	}
	d.SetLines(true, true)
	d.Tick()
}

// sendScancode clocks one well-formed frame into the decoder.
func sendScancode(d *Decoder, scancode byte) {
	clockBits(d, FrameBits(scancode))
}

// press sends a make code, with the extended prefix if needed.
func press(d *Decoder, extended bool, scancode byte) {
	if extended {
		sendScancode(d, ExtendedPrefix)
	}
	sendScancode(d, scancode)
}

// release sends a break sequence.
func release(d *Decoder, extended bool, scancode byte) {
	if extended {
		sendScancode(d, ExtendedPrefix)
	}
	sendScancode(d, BreakPrefix)
	sendScancode(d, scancode)
}

// takeByte consumes and returns the pending output byte.
func takeByte(t *testing.T, d *Decoder) byte {
	t.Helper()
	if !d.OutputValid() {
		t.Fatal("no output pending")
	}
	b := d.Output()
	d.ConsumeOutput()
	return b
}

func TestDecodeSimpleKey(t *testing.T) {
	d := newTestDecoder()
	press(d, false, 0x1C) // a
	if got := takeByte(t, d); got != 'a' {
		t.Errorf("got %q, want 'a'", got)
	}
}

func TestBreakEmitsNothing(t *testing.T) {
	d := newTestDecoder()
	press(d, false, 0x1C)
	takeByte(t, d)
	release(d, false, 0x1C)
	if d.OutputValid() {
		t.Errorf("key release emitted %q", d.Output())
	}
}

func TestModifierMakeBreakRestoresState(t *testing.T) {
	d := newTestDecoder()
	before := d.Modifiers()

	press(d, false, keymap.ScanLeftShift)
	if !d.Modifiers().HasShift() {
		t.Fatal("shift not registered")
	}
	release(d, false, keymap.ScanLeftShift)

	if d.Modifiers() != before {
		t.Errorf("modifier state = %#v, want %#v", d.Modifiers(), before)
	}
	if d.OutputValid() {
		t.Error("modifier keys must not emit bytes")
	}
}

func TestShiftSelectsPlane(t *testing.T) {
	d := newTestDecoder()
	press(d, false, keymap.ScanLeftShift)
	press(d, false, 0x1C)
	if got := takeByte(t, d); got != 'A' {
		t.Errorf("shift+a = %q, want 'A'", got)
	}
	release(d, false, keymap.ScanLeftShift)
	press(d, false, 0x1C)
	if got := takeByte(t, d); got != 'a' {
		t.Errorf("a after shift released = %q, want 'a'", got)
	}
}

func TestCapsLockToggle(t *testing.T) {
	d := newTestDecoder()

	press(d, false, keymap.ScanCapsLock)
	release(d, false, keymap.ScanCapsLock)
	if !d.CapsLock() {
		t.Fatal("caps lock should latch on key-down")
	}

	press(d, false, 0x1C)
	if got := takeByte(t, d); got != 'A' {
		t.Errorf("caps a = %q, want 'A'", got)
	}

	// Key-up is a no-op; a second press toggles off.
	press(d, false, keymap.ScanCapsLock)
	release(d, false, keymap.ScanCapsLock)
	if d.CapsLock() {
		t.Error("caps lock should toggle off on second press")
	}
}

func TestControlMasksBits(t *testing.T) {
	d := newTestDecoder()
	press(d, false, keymap.ScanLeftCtrl)
	press(d, false, 0x21) // c
	if got := takeByte(t, d); got != 0x03 {
		t.Errorf("ctrl+c = %#x, want 0x03", got)
	}
}

func TestEscapedKeyEmitsTwoBytes(t *testing.T) {
	d := newTestDecoder()
	press(d, true, keymap.ScanUp)

	if got := takeByte(t, d); got != ESC {
		t.Fatalf("first byte = %#x, want ESC", got)
	}
	d.Tick() // the second byte follows on the next tick
	if got := takeByte(t, d); got != 'A' {
		t.Errorf("second byte = %q, want 'A'", got)
	}
}

func TestMetaSynthesizesEscapePrefix(t *testing.T) {
	d := newTestDecoder()
	press(d, false, keymap.ScanLeftAlt)
	press(d, false, 0x1C)

	if got := takeByte(t, d); got != ESC {
		t.Fatalf("first byte = %#x, want ESC", got)
	}
	d.Tick()
	if got := takeByte(t, d); got != 'a' {
		t.Errorf("second byte = %q, want 'a'", got)
	}
}

func TestOccupiedSlotDropsEvent(t *testing.T) {
	d := newTestDecoder()
	press(d, false, 0x1C) // a, left unconsumed
	press(d, false, 0x32) // b, must be dropped

	if got := takeByte(t, d); got != 'a' {
		t.Fatalf("got %q, want 'a'", got)
	}
	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if d.OutputValid() {
		t.Errorf("dropped event reappeared as %q", d.Output())
	}
}

func TestBadParityFrameDiscarded(t *testing.T) {
	d := newTestDecoder()

	bits := FrameBits(0x1C)
	bits[9] = !bits[9] // corrupt the parity bit
	clockBits(d, bits)

	if d.OutputValid() {
		t.Error("corrupt frame produced output")
	}
	if !d.FrameError() {
		t.Error("frame-error flag not raised")
	}

	// The decoder resynchronizes on the next good frame.
	press(d, false, 0x1C)
	if got := takeByte(t, d); got != 'a' {
		t.Errorf("post-error frame = %q, want 'a'", got)
	}

	d.ClearFrameError()
	if d.FrameError() {
		t.Error("frame-error flag should clear")
	}
}

func TestBadStopBitDiscarded(t *testing.T) {
	d := newTestDecoder()
	bits := FrameBits(0x1C)
	bits[10] = false // stop bit must be high
	clockBits(d, bits)

	if d.OutputValid() || !d.FrameError() {
		t.Error("frame with bad stop bit must be dropped with the flag raised")
	}
}

func TestUnmappedScancode(t *testing.T) {
	d := newTestDecoder()
	press(d, false, 0x7F) // nothing bound there in the default layout
	if d.OutputValid() {
		t.Errorf("unmapped key emitted %q", d.Output())
	}
}

func TestKeyRepeat(t *testing.T) {
	d := New(keymap.Default(), Config{RepeatDelayTicks: 50, RepeatIntervalTicks: 20})

	press(d, false, 0x1C)
	if got := takeByte(t, d); got != 'a' {
		t.Fatalf("got %q", got)
	}

	// Hold through the initial delay.
	for i := 0; i < 50 && !d.OutputValid(); i++ {
		d.Tick()
	}
	if !d.OutputValid() || d.Output() != 'a' {
		t.Fatal("no repeat after initial delay")
	}
	d.ConsumeOutput()

	// Subsequent repeats come at the faster interval.
	ticks := 0
	for ; ticks < 50 && !d.OutputValid(); ticks++ {
		d.Tick()
	}
	if !d.OutputValid() {
		t.Fatal("no second repeat")
	}
	if ticks > 20 {
		t.Errorf("second repeat took %d ticks, want <= 20", ticks)
	}
	d.ConsumeOutput()

	// Release cancels repeat immediately. A repeat may have fired while the
	// break frame was still being clocked in; drop it before checking.
	release(d, false, 0x1C)
	d.ConsumeOutput()
	for i := 0; i < 200; i++ {
		d.Tick()
	}
	if d.OutputValid() {
		t.Error("repeat continued after key release")
	}
}

func TestRepeatNeverOverwritesPendingOutput(t *testing.T) {
	d := New(keymap.Default(), Config{RepeatDelayTicks: 10, RepeatIntervalTicks: 5})

	press(d, false, 0x1C)
	// Leave 'a' unconsumed and run far past several repeat periods.
	for i := 0; i < 100; i++ {
		d.Tick()
	}
	if got := takeByte(t, d); got != 'a' {
		t.Errorf("slot corrupted: got %q", got)
	}
}

func TestResetClearsState(t *testing.T) {
	d := newTestDecoder()
	press(d, false, keymap.ScanLeftShift)
	press(d, false, keymap.ScanCapsLock)
	press(d, false, 0x1C)

	d.Reset()
	if d.OutputValid() || d.Modifiers() != keymap.ModNone || d.CapsLock() {
		t.Error("reset left state behind")
	}
}
