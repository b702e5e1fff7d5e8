package app

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// exitByte ends a headless session, telnet-style (Ctrl+]).
const exitByte = 0x1D

// runHeadless bridges raw stdin and stdout: stdin bytes feed the receive
// line, transmit bytes go to stdout, and the final grid contents print on
// exit.
func (a *App) runHeadless() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()
	defer a.cleanup()

	out := bufio.NewWriter(os.Stdout)
	a.term.OnBell(func() {
		if a.audio {
			a.ringer.Ring()
			return
		}
		_ = out.WriteByte(0x07)
	})

	stdin := make(chan byte, 256)
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			for _, b := range buf[:n] {
				select {
				case stdin <- b:
				case <-a.quit:
					return
				}
			}
		}
	}()

	ticker := frameTicker()
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return a.dumpGrid(out)

		case <-ticker.C:
			for {
				select {
				case b := <-stdin:
					if b == exitByte {
						return a.dumpGrid(out)
					}
					a.term.FeedHostByte(b)
					continue
				default:
				}
				break
			}
			a.term.Idle(a.ticksPerFrame())
			for a.term.HostByteReady() {
				_ = out.WriteByte(a.term.ReadHostByte())
			}
			if err := out.Flush(); err != nil {
				return err
			}
		}
	}
}

// dumpGrid prints the grid contents, one line per row. The tty is still in
// raw mode, so rows end with CRLF.
func (a *App) dumpGrid(out *bufio.Writer) error {
	snap := a.term.Snapshot()
	_, _ = out.WriteString("\r\n")
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			_ = out.WriteByte(snap.At(row, col))
		}
		_, _ = out.WriteString("\r\n")
	}
	return out.Flush()
}
