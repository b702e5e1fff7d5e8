// Package keymap provides the scancode-to-ASCII translation table for the
// terminal's keyboard decoder.
//
// The table holds 2048 entries addressed by four lookup-plane bits and the
// raw scancode:
//
//	address = extended(1) | capsLock(1) | shift(1) | scancode(8)
//
// Each entry is a single encoded byte with three variants:
//
//   - Regular: bit 7 clear; bits [6:0] hold an ASCII byte. Bits [6:5] are
//     zeroed by the caller when control is held.
//   - Modifier: bits [7:6] = 10; bits [5:0] hold a modifier bitmask.
//     An all-zero mask denotes caps lock.
//   - Escaped: bits [7:6] = 11; bits [6:0] hold an uppercase ASCII letter
//     to be sent as an ESC-prefixed two-byte sequence.
//
// An all-zero entry means "no mapping" and produces no output.
//
// Tables can be built from the built-in US layout (Default), loaded from a
// JSON file, or produced by a Lua script.
package keymap
