package arbiter

import "testing"

// slot is a scripted single-slot producer.
type slot struct {
	queue []byte
	valid bool
	data  byte
}

func (s *slot) push(b byte) {
	s.queue = append(s.queue, b)
}

// refill moves the next queued byte into the slot, mimicking a producer that
// reloads as soon as its output is consumed.
func (s *slot) refill() {
	if !s.valid && len(s.queue) > 0 {
		s.data = s.queue[0]
		s.queue = s.queue[1:]
		s.valid = true
	}
}

func (s *slot) OutputValid() bool { return s.valid }
func (s *slot) Output() byte      { return s.data }
func (s *slot) ConsumeOutput()    { s.valid = false }

func TestKeyboardPriority(t *testing.T) {
	kbd, ser := &slot{}, &slot{}
	a := New(kbd, ser)

	kbd.push('k')
	ser.push('s')
	kbd.refill()
	ser.refill()

	a.Tick()
	if !a.Valid() || a.Byte() != 'k' || a.Origin() != OriginKeyboard {
		t.Fatalf("got %q from %v, want 'k' from keyboard", a.Byte(), a.Origin())
	}
	a.Accept()
	a.Tick()
	if !a.Valid() || a.Byte() != 's' || a.Origin() != OriginSerial {
		t.Fatalf("got %q from %v, want 's' from serial", a.Byte(), a.Origin())
	}
}

func TestSerialServicedWhenKeyboardIdle(t *testing.T) {
	kbd, ser := &slot{}, &slot{}
	a := New(kbd, ser)

	ser.push('x')
	ser.refill()
	a.Tick()
	if !a.Valid() || a.Origin() != OriginSerial {
		t.Fatal("serial byte should flow when the keyboard is idle")
	}
}

func TestSingleSlotBackpressure(t *testing.T) {
	kbd, ser := &slot{}, &slot{}
	a := New(kbd, ser)

	kbd.push('a')
	kbd.push('b')
	kbd.refill()

	a.Tick()
	kbd.refill()

	// Output not accepted yet; further ticks must not overwrite it.
	a.Tick()
	a.Tick()
	if a.Byte() != 'a' {
		t.Fatalf("slot overwritten: got %q", a.Byte())
	}
	if !kbd.valid {
		t.Fatal("second byte should still be waiting in the producer")
	}

	a.Accept()
	a.Tick()
	if a.Byte() != 'b' {
		t.Fatalf("got %q, want 'b'", a.Byte())
	}
}

func TestExactlyOnceInOrder(t *testing.T) {
	kbd, ser := &slot{}, &slot{}
	a := New(kbd, ser)

	for _, b := range []byte("hello") {
		ser.push(b)
	}

	var got []byte
	for i := 0; i < 100 && len(got) < 5; i++ {
		ser.refill()
		a.Tick()
		if a.Valid() {
			got = append(got, a.Byte())
			a.Accept()
		}
	}
	if string(got) != "hello" {
		t.Errorf("delivered %q, want %q", got, "hello")
	}
}

func TestKeyboardStarvesSerial(t *testing.T) {
	kbd, ser := &slot{}, &slot{}
	a := New(kbd, ser)

	ser.push('s')
	for i := 0; i < 10; i++ {
		kbd.push('k')
	}

	for i := 0; i < 10; i++ {
		kbd.refill()
		ser.refill()
		a.Tick()
		if a.Origin() != OriginKeyboard {
			t.Fatalf("tick %d: serial byte served while keyboard pending", i)
		}
		a.Accept()
	}
}
