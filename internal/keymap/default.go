package keymap

// PS/2 scancode set 2 make codes for the keys the default layout binds.
// Extended codes (0xE0 prefix) are listed separately.
const (
	ScanEscape    = 0x76
	ScanBackspace = 0x66
	ScanTab       = 0x0D
	ScanEnter     = 0x5A
	ScanSpace     = 0x29
	ScanCapsLock  = 0x58
	ScanLeftShift = 0x12
	ScanRightShft = 0x59
	ScanLeftCtrl  = 0x14
	ScanLeftAlt   = 0x11
	ScanF1        = 0x05
	ScanF2        = 0x06
	ScanF3        = 0x04

	// Extended (0xE0-prefixed) codes.
	ScanRightCtrl = 0x14
	ScanRightAlt  = 0x11
	ScanUp        = 0x75
	ScanDown      = 0x72
	ScanLeft      = 0x6B
	ScanRight     = 0x74
	ScanHome      = 0x6C
	ScanDelete    = 0x71
)

// charKey describes one character-producing key of the default layout.
type charKey struct {
	scancode byte
	base     byte
	shifted  byte
	letter   bool
}

var defaultChars = []charKey{
	{0x1C, 'a', 'A', true}, {0x32, 'b', 'B', true}, {0x21, 'c', 'C', true},
	{0x23, 'd', 'D', true}, {0x24, 'e', 'E', true}, {0x2B, 'f', 'F', true},
	{0x34, 'g', 'G', true}, {0x33, 'h', 'H', true}, {0x43, 'i', 'I', true},
	{0x3B, 'j', 'J', true}, {0x42, 'k', 'K', true}, {0x4B, 'l', 'L', true},
	{0x3A, 'm', 'M', true}, {0x31, 'n', 'N', true}, {0x44, 'o', 'O', true},
	{0x4D, 'p', 'P', true}, {0x15, 'q', 'Q', true}, {0x2D, 'r', 'R', true},
	{0x1B, 's', 'S', true}, {0x2C, 't', 'T', true}, {0x3C, 'u', 'U', true},
	{0x2A, 'v', 'V', true}, {0x1D, 'w', 'W', true}, {0x22, 'x', 'X', true},
	{0x35, 'y', 'Y', true}, {0x1A, 'z', 'Z', true},

	{0x16, '1', '!', false}, {0x1E, '2', '@', false}, {0x26, '3', '#', false},
	{0x25, '4', '$', false}, {0x2E, '5', '%', false}, {0x36, '6', '^', false},
	{0x3D, '7', '&', false}, {0x3E, '8', '*', false}, {0x46, '9', '(', false},
	{0x45, '0', ')', false},

	{0x4E, '-', '_', false}, {0x55, '=', '+', false}, {0x54, '[', '{', false},
	{0x5B, ']', '}', false}, {0x5D, '\\', '|', false}, {0x4C, ';', ':', false},
	{0x52, '\'', '"', false}, {0x41, ',', '<', false}, {0x49, '.', '>', false},
	{0x4A, '/', '?', false}, {0x0E, '`', '~', false},
}

// Keystroke names the physical key and shift plane that produce a character
// on the default layout.
type Keystroke struct {
	Scancode byte
	Shift    bool
}

// DefaultKeystroke returns the key producing printable character c on the
// default layout. Drivers translating host key events into scancodes use it
// for the character keys; control and cursor keys have fixed codes.
func DefaultKeystroke(c byte) (Keystroke, bool) {
	if c == ' ' {
		return Keystroke{Scancode: ScanSpace}, true
	}
	for _, ck := range defaultChars {
		if ck.base == c {
			return Keystroke{Scancode: ck.scancode}, true
		}
		if ck.shifted == c {
			return Keystroke{Scancode: ck.scancode, Shift: true}, true
		}
	}
	return Keystroke{}, false
}

// Default returns the built-in US layout.
//
// Cursor keys map to Escaped entries producing the VT52 cursor sequences
// ESC A..D; F1..F3 produce ESC P/Q/R and Home produces ESC H.
func Default() *Table {
	t := &Table{}

	for _, ck := range defaultChars {
		t.SetChar(false, ck.scancode, ck.base, ck.shifted, ck.letter)
	}

	t.SetAllPlanes(false, ScanSpace, Regular(' '))
	t.SetAllPlanes(false, ScanEnter, Regular(0x0D))
	t.SetAllPlanes(false, ScanBackspace, Regular(0x08))
	t.SetAllPlanes(false, ScanTab, Regular(0x09))
	t.SetAllPlanes(false, ScanEscape, Regular(0x1B))
	t.SetAllPlanes(true, ScanDelete, Regular(0x7F))

	t.SetAllPlanes(false, ScanLeftShift, ModifierEntry(ModLeftShift))
	t.SetAllPlanes(false, ScanRightShft, ModifierEntry(ModRightShift))
	t.SetAllPlanes(false, ScanLeftCtrl, ModifierEntry(ModLeftCtrl))
	t.SetAllPlanes(true, ScanRightCtrl, ModifierEntry(ModRightCtrl))
	t.SetAllPlanes(false, ScanLeftAlt, ModifierEntry(ModLeftMeta))
	t.SetAllPlanes(true, ScanRightAlt, ModifierEntry(ModRightMeta))
	t.SetAllPlanes(false, ScanCapsLock, CapsLockEntry())

	t.SetAllPlanes(true, ScanUp, Escaped('A'))
	t.SetAllPlanes(true, ScanDown, Escaped('B'))
	t.SetAllPlanes(true, ScanRight, Escaped('C'))
	t.SetAllPlanes(true, ScanLeft, Escaped('D'))
	t.SetAllPlanes(true, ScanHome, Escaped('H'))
	t.SetAllPlanes(false, ScanF1, Escaped('P'))
	t.SetAllPlanes(false, ScanF2, Escaped('Q'))
	t.SetAllPlanes(false, ScanF3, Escaped('R'))

	return t
}
