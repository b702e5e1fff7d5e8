// Package term assembles the terminal from its parts: the keyboard decoder,
// the serial framer, the input arbiter, the command interpreter, and the
// character grid. Terminal owns the tick order between them and exposes the
// line-level interfaces a host or keyboard driver connects to.
package term
