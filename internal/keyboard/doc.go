// Package keyboard decodes the keyboard's serial scancode protocol into the
// terminal's byte stream.
//
// The wire side is an 11-bit frame (start 0, eight data bits LSB-first, odd
// parity, stop 1) clocked by the keyboard; the decoder samples the data line
// on each falling clock edge. Frames failing the start, stop, or parity
// check are discarded silently — a sticky frame-error flag is raised for
// observability only — and the decoder resynchronizes on the next start bit.
//
// Above the framing layer, 0xF0 and 0xE0 prefixes mark key releases and
// extended keys, modifiers are tracked as live state, and the keymap table
// translates the remaining make/break events into output bytes, ESC-prefixed
// sequences, and caps-lock toggles.
//
// Output is a single slot with a valid/ready handshake. A key event that
// would produce output while the slot is still occupied is dropped outright:
// no queuing, no coalescing. That is a deliberate simplification carried
// over from the hardware, not a bug to fix.
package keyboard
