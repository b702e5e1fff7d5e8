package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vt52/internal/keymap"
)

func TestStrokeForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Stroke
	}{
		{'a', Stroke{Scancode: 0x1C}},
		{'A', Stroke{Scancode: 0x1C, Shift: true}},
		{'1', Stroke{Scancode: 0x16}},
		{'!', Stroke{Scancode: 0x16, Shift: true}},
		{' ', Stroke{Scancode: keymap.ScanSpace}},
		{'?', Stroke{Scancode: 0x4A, Shift: true}},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tcell.KeyRune, tt.r, tcell.ModNone)
		got, ok := strokeForEvent(ev)
		if !ok {
			t.Errorf("%q: no stroke", tt.r)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %+v, want %+v", tt.r, got, tt.want)
		}
	}
}

func TestStrokeForNamedKeys(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		want Stroke
	}{
		{tcell.KeyEnter, Stroke{Scancode: keymap.ScanEnter}},
		{tcell.KeyEscape, Stroke{Scancode: keymap.ScanEscape}},
		{tcell.KeyUp, Stroke{Scancode: keymap.ScanUp, Extended: true}},
		{tcell.KeyDelete, Stroke{Scancode: keymap.ScanDelete, Extended: true}},
		{tcell.KeyF1, Stroke{Scancode: keymap.ScanF1}},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, 0, tcell.ModNone)
		got, ok := strokeForEvent(ev)
		if !ok {
			t.Errorf("key %v: no stroke", tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("key %v: got %+v, want %+v", tt.key, got, tt.want)
		}
	}
}

func TestStrokeForControlLetter(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	got, ok := strokeForEvent(ev)
	if !ok {
		t.Fatal("no stroke for ctrl-c")
	}
	want := Stroke{Scancode: 0x21, Ctrl: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStrokeForUnmappedKey(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone)
	if _, ok := strokeForEvent(ev); ok {
		t.Error("F12 should have no stroke")
	}

	ev = tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)
	if _, ok := strokeForEvent(ev); ok {
		t.Error("non-ASCII rune should have no stroke")
	}
}
