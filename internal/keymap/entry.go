package keymap

import "fmt"

// Modifier is a bitmask of the six independent modifier keys. The same mask
// layout is stored in Modifier-variant table entries and in the decoder's
// live modifier state.
type Modifier uint8

const (
	// ModLeftShift is the left Shift key.
	ModLeftShift Modifier = 1 << iota

	// ModRightShift is the right Shift key.
	ModRightShift

	// ModLeftCtrl is the left Control key.
	ModLeftCtrl

	// ModRightCtrl is the right Control key.
	ModRightCtrl

	// ModLeftMeta is the left Meta key.
	ModLeftMeta

	// ModRightMeta is the right Meta key.
	ModRightMeta

	// ModNone indicates no modifiers.
	ModNone Modifier = 0
)

// HasShift returns true if either Shift key is held.
func (m Modifier) HasShift() bool {
	return m&(ModLeftShift|ModRightShift) != 0
}

// HasCtrl returns true if either Control key is held.
func (m Modifier) HasCtrl() bool {
	return m&(ModLeftCtrl|ModRightCtrl) != 0
}

// HasMeta returns true if either Meta key is held.
func (m Modifier) HasMeta() bool {
	return m&(ModLeftMeta|ModRightMeta) != 0
}

// With returns m with the given mask added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with the given mask removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// Kind identifies an entry variant.
type Kind uint8

const (
	// KindUnmapped is an empty entry; the key produces no output.
	KindUnmapped Kind = iota

	// KindRegular is a directly-emitted ASCII byte.
	KindRegular

	// KindModifier updates the modifier state instead of emitting.
	KindModifier

	// KindCapsLock toggles the caps-lock latch on key-down.
	KindCapsLock

	// KindEscaped emits ESC followed by an ASCII letter.
	KindEscaped
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnmapped:
		return "unmapped"
	case KindRegular:
		return "regular"
	case KindModifier:
		return "modifier"
	case KindCapsLock:
		return "capslock"
	case KindEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Entry is one encoded table value. See the package documentation for the
// bit layout.
type Entry byte

// Entry constructors.

// Regular returns an entry that emits the ASCII byte b directly.
// b must be in [0x01, 0x7F]; values outside that range alias other variants.
func Regular(b byte) Entry {
	return Entry(b & 0x7F)
}

// ModifierEntry returns an entry carrying the given modifier mask.
func ModifierEntry(mask Modifier) Entry {
	return Entry(0x80 | (byte(mask) & 0x3F))
}

// CapsLockEntry returns the caps-lock toggle entry (a modifier entry with an
// all-zero mask).
func CapsLockEntry() Entry {
	return Entry(0x80)
}

// Escaped returns an entry that emits ESC followed by the uppercase letter c.
func Escaped(c byte) Entry {
	return Entry(0x80 | (c & 0x7F))
}

// Kind reports which variant the entry encodes.
func (e Entry) Kind() Kind {
	switch {
	case e == 0:
		return KindUnmapped
	case e&0x80 == 0:
		return KindRegular
	case e&0x40 != 0:
		return KindEscaped
	case e&0x3F == 0:
		return KindCapsLock
	default:
		return KindModifier
	}
}

// Byte returns the ASCII byte for Regular and Escaped entries, zero otherwise.
func (e Entry) Byte() byte {
	switch e.Kind() {
	case KindRegular:
		return byte(e) & 0x7F
	case KindEscaped:
		return byte(e) & 0x7F
	}
	return 0
}

// Mask returns the modifier bitmask for Modifier entries, ModNone otherwise.
func (e Entry) Mask() Modifier {
	if e.Kind() != KindModifier {
		return ModNone
	}
	return Modifier(byte(e) & 0x3F)
}

// String returns a readable form, e.g. "regular('a')" or "modifier(0x01)".
func (e Entry) String() string {
	switch e.Kind() {
	case KindUnmapped:
		return "unmapped"
	case KindRegular:
		return fmt.Sprintf("regular(%q)", e.Byte())
	case KindModifier:
		return fmt.Sprintf("modifier(0x%02x)", byte(e.Mask()))
	case KindCapsLock:
		return "capslock"
	default:
		return fmt.Sprintf("escaped(%q)", e.Byte())
	}
}
