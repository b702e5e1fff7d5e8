// Package arbiter merges the keyboard decoder's byte stream and the serial
// receiver's byte stream into the single stream consumed by the command
// interpreter.
//
// The arbiter holds at most one byte. While the slot is empty the keyboard
// always wins; the serial side is serviced only when the keyboard has
// nothing pending. This is a fixed priority, not fair scheduling: sustained
// keyboard traffic can starve serial input indefinitely, which is the
// intended behavior, not a defect. Each accepted byte is delivered exactly
// once, tagged with its origin, in the order presented by its source.
package arbiter

// Origin identifies which producer a byte came from. The interpreter uses
// it to pick the escape-sequence timeout.
type Origin uint8

const (
	// OriginKeyboard marks bytes produced by the keyboard decoder.
	OriginKeyboard Origin = iota

	// OriginSerial marks bytes received over the serial line.
	OriginSerial
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginKeyboard:
		return "keyboard"
	case OriginSerial:
		return "serial"
	default:
		return "unknown"
	}
}

// Producer is a single-slot byte source. Output must stay stable while
// OutputValid is true; ConsumeOutput empties the slot.
type Producer interface {
	OutputValid() bool
	Output() byte
	ConsumeOutput()
}

// Arbiter is the two-way single-slot multiplexer.
type Arbiter struct {
	keyboard Producer
	serial   Producer

	data   byte
	origin Origin
	valid  bool
}

// New returns an arbiter over the two producers. The first producer has
// absolute priority.
func New(keyboard, serial Producer) *Arbiter {
	return &Arbiter{keyboard: keyboard, serial: serial}
}

// Tick refills the output slot if it is empty, keyboard first.
func (a *Arbiter) Tick() {
	if a.valid {
		return
	}
	switch {
	case a.keyboard.OutputValid():
		a.data = a.keyboard.Output()
		a.origin = OriginKeyboard
		a.keyboard.ConsumeOutput()
		a.valid = true
	case a.serial.OutputValid():
		a.data = a.serial.Output()
		a.origin = OriginSerial
		a.serial.ConsumeOutput()
		a.valid = true
	}
}

// Valid reports whether a byte is waiting for the consumer.
func (a *Arbiter) Valid() bool {
	return a.valid
}

// Byte returns the pending byte. Only meaningful while Valid.
func (a *Arbiter) Byte() byte {
	return a.data
}

// Origin returns the pending byte's source. Only meaningful while Valid.
func (a *Arbiter) Origin() Origin {
	return a.origin
}

// Accept consumes the pending byte, freeing the slot for the next tick.
func (a *Arbiter) Accept() {
	a.valid = false
}

// Reset drops any pending byte.
func (a *Arbiter) Reset() {
	a.valid = false
}
