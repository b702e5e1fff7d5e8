// Package serial implements the asynchronous-serial byte framer: a
// transmitter and a receiver advanced one logical tick at a time over a
// two-wire line (one level per direction, high = idle/mark).
//
// Character length (5-8 bits), parity (none/odd/even), stop-bit count
// (1, 1.5, or 2), and the baud divisor (ticks per bit period) are
// configurable independently per direction and fixed for the session.
//
// Transmission faults are reported as latched flags (overrun, framing,
// parity) that clear only when the received byte is explicitly consumed
// with ReadByte. Errors never halt either state machine.
package serial
