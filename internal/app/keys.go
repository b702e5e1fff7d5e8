package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vt52/internal/keymap"
)

// Stroke is one emulated keypress: which key to clock into the keyboard and
// which modifier keys to hold around it. Host key events arrive as already
// translated characters, so the translation here reverses the default
// layout; a custom keymap sees the same physical keys.
type Stroke struct {
	Scancode byte
	Extended bool
	Shift    bool
	Ctrl     bool
}

// namedStrokes covers the tcell keys with fixed scancodes.
var namedStrokes = map[tcell.Key]Stroke{
	tcell.KeyEnter:      {Scancode: keymap.ScanEnter},
	tcell.KeyTab:        {Scancode: keymap.ScanTab},
	tcell.KeyBackspace:  {Scancode: keymap.ScanBackspace},
	tcell.KeyBackspace2: {Scancode: keymap.ScanBackspace},
	tcell.KeyEscape:     {Scancode: keymap.ScanEscape},
	tcell.KeyUp:         {Scancode: keymap.ScanUp, Extended: true},
	tcell.KeyDown:       {Scancode: keymap.ScanDown, Extended: true},
	tcell.KeyLeft:       {Scancode: keymap.ScanLeft, Extended: true},
	tcell.KeyRight:      {Scancode: keymap.ScanRight, Extended: true},
	tcell.KeyHome:       {Scancode: keymap.ScanHome, Extended: true},
	tcell.KeyDelete:     {Scancode: keymap.ScanDelete, Extended: true},
	tcell.KeyF1:         {Scancode: keymap.ScanF1},
	tcell.KeyF2:         {Scancode: keymap.ScanF2},
	tcell.KeyF3:         {Scancode: keymap.ScanF3},
}

// strokeForEvent translates a host key event. It reports false for keys the
// emulated keyboard has no equivalent for.
func strokeForEvent(ev *tcell.EventKey) (Stroke, bool) {
	if s, ok := namedStrokes[ev.Key()]; ok {
		return s, true
	}

	// tcell folds control-letter combinations into dedicated key codes in
	// the C0 range.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		ks, ok := keymap.DefaultKeystroke(byte('a' + k - tcell.KeyCtrlA))
		if !ok {
			return Stroke{}, false
		}
		return Stroke{Scancode: ks.Scancode, Ctrl: true}, true
	}

	if ev.Key() != tcell.KeyRune {
		return Stroke{}, false
	}
	r := ev.Rune()
	if r < 0x20 || r > 0x7E {
		return Stroke{}, false
	}
	ks, ok := keymap.DefaultKeystroke(byte(r))
	if !ok {
		return Stroke{}, false
	}
	return Stroke{Scancode: ks.Scancode, Shift: ks.Shift}, true
}
