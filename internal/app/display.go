package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vt52/internal/keymap"
)

// phosphor is the single text style of the emulated display.
var phosphor = tcell.StyleDefault.
	Foreground(tcell.ColorGreen).
	Background(tcell.ColorBlack)

// runDisplay is the default mode: the grid on a tcell screen, host key
// events clocked into the keyboard. Ctrl+Q quits.
func (a *App) runDisplay() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer a.cleanup()
	defer screen.Fini()

	a.term.OnBell(func() {
		if a.audio {
			a.ringer.Ring()
			return
		}
		_ = screen.Beep() // best effort
	})

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := frameTicker()
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if e.Key() == tcell.KeyCtrlQ {
					return ErrQuit
				}
				if s, ok := strokeForEvent(e); ok {
					a.applyStroke(s)
				}
			}

		case <-ticker.C:
			a.term.Idle(a.ticksPerFrame())
			a.pumpHost()
			a.render(screen)
		}
	}
}

// applyStroke clocks one emulated keypress into the keyboard, wrapped in
// the modifier presses it needs.
func (a *App) applyStroke(s Stroke) {
	if s.Ctrl {
		a.term.PressKey(keymap.ScanLeftCtrl, false)
	}
	if s.Shift {
		a.term.PressKey(keymap.ScanLeftShift, false)
	}
	a.term.TypeKey(s.Scancode, s.Extended)
	if s.Shift {
		a.term.ReleaseKey(keymap.ScanLeftShift, false)
	}
	if s.Ctrl {
		a.term.ReleaseKey(keymap.ScanLeftCtrl, false)
	}
}

// render paints the grid snapshot and cursor.
func (a *App) render(screen tcell.Screen) {
	snap := a.term.Snapshot()
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			screen.SetContent(col, row, rune(snap.At(row, col)), nil, phosphor)
		}
	}
	row, col := a.term.Cursor()
	screen.ShowCursor(col, row)
	screen.Show()
}
