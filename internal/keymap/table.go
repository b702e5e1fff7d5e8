package keymap

// TableSize is the number of entries in a translation table: four lookup
// planes of 256 scancodes each, doubled by the extended-prefix bit.
const TableSize = 2048

// Table is the full scancode translation table. The zero value maps nothing.
type Table struct {
	entries [TableSize]Entry
}

// Address packs the lookup-plane flags and scancode into a table index.
func Address(extended, capsLock, shift bool, scancode byte) int {
	addr := int(scancode)
	if shift {
		addr |= 1 << 8
	}
	if capsLock {
		addr |= 1 << 9
	}
	if extended {
		addr |= 1 << 10
	}
	return addr
}

// Lookup returns the entry for the given plane flags and scancode.
func (t *Table) Lookup(extended, capsLock, shift bool, scancode byte) Entry {
	return t.entries[Address(extended, capsLock, shift, scancode)]
}

// Set stores an entry in a single plane.
func (t *Table) Set(extended, capsLock, shift bool, scancode byte, e Entry) {
	t.entries[Address(extended, capsLock, shift, scancode)] = e
}

// SetAllPlanes stores the same entry in every caps/shift plane of the given
// extended half. Used for keys unaffected by shift and caps lock (modifiers,
// control keys, escaped keys).
func (t *Table) SetAllPlanes(extended bool, scancode byte, e Entry) {
	for _, caps := range []bool{false, true} {
		for _, shift := range []bool{false, true} {
			t.Set(extended, caps, shift, scancode, e)
		}
	}
}

// SetChar stores a base/shift character pair in all four caps/shift planes.
// When letter is true, caps lock inverts the shift selection, which is the
// conventional caps behavior for alphabetic keys.
func (t *Table) SetChar(extended bool, scancode byte, base, shifted byte, letter bool) {
	t.Set(extended, false, false, scancode, Regular(base))
	t.Set(extended, false, true, scancode, Regular(shifted))
	if letter {
		t.Set(extended, true, false, scancode, Regular(shifted))
		t.Set(extended, true, true, scancode, Regular(base))
	} else {
		t.Set(extended, true, false, scancode, Regular(base))
		t.Set(extended, true, true, scancode, Regular(shifted))
	}
}
