// Package interp implements the VT52 escape-sequence command interpreter.
//
// The interpreter consumes the arbitrated byte stream one byte at a time and
// is the sole writer of the character grid and cursor. Printable bytes are
// stored at the cursor; control bytes move it; ESC introduces the command
// set (cursor motion, home, reverse linefeed, erase, direct addressing).
//
// Erases run one cell per tick and scrolls are delegated to the grid via its
// request/busy handshake, so the interpreter is not ready for new input
// while either is in progress. A partially received escape sequence is
// abandoned after a bounded wait; the timeout is shorter for serial-origin
// sequences than keyboard-origin ones, since a lost byte on the line must
// not wedge the terminal. Malformed input is never fatal: unrecognized
// sequences are ignored and out-of-range cursor arguments are replaced by
// the current coordinate.
package interp
