package app

import (
	hostserial "github.com/tarm/serial"
)

// HostPort is the byte-level link to the remote host. ReadByte never blocks;
// it reports false when no byte is pending.
type HostPort interface {
	ReadByte() (byte, bool)
	WriteByte(b byte)
	Close()
}

// portLink bridges a physical (or pty) serial port. A reader goroutine
// pumps the blocking port reads into a channel the run loop drains.
type portLink struct {
	port *hostserial.Port
	in   chan byte
	done chan struct{}
}

// OpenPort opens the named serial port at the given baud rate.
func OpenPort(name string, baud int) (HostPort, error) {
	port, err := hostserial.OpenPort(&hostserial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, err
	}
	l := &portLink{
		port: port,
		in:   make(chan byte, 256),
		done: make(chan struct{}),
	}
	go l.reader()
	return l, nil
}

func (l *portLink) reader() {
	buf := make([]byte, 64)
	for {
		n, err := l.port.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			select {
			case l.in <- b:
			case <-l.done:
				return
			}
		}
	}
}

func (l *portLink) ReadByte() (byte, bool) {
	select {
	case b := <-l.in:
		return b, true
	default:
		return 0, false
	}
}

func (l *portLink) WriteByte(b byte) {
	_, _ = l.port.Write([]byte{b}) // best effort; faults surface on read
}

func (l *portLink) Close() {
	close(l.done)
	_ = l.port.Close()
}
