package interp

// State is the interpreter's current mode. Exactly one is active at a time.
type State uint8

const (
	// StateNormal writes printables and executes control bytes.
	StateNormal State = iota

	// StateEscape is waiting for the byte after ESC.
	StateEscape

	// StateAwaitRow is waiting for the row argument of ESC Y.
	StateAwaitRow

	// StateAwaitCol is waiting for the column argument of ESC Y.
	StateAwaitCol

	// StateApplyCursor commits a captured cursor address on the next tick.
	StateApplyCursor

	// StateErasing is blanking a cell range, one cell per tick.
	StateErasing

	// StateAwaitingScroll is waiting for the grid to finish a scroll.
	StateAwaitingScroll
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateEscape:
		return "escape"
	case StateAwaitRow:
		return "awaitRow"
	case StateAwaitCol:
		return "awaitCol"
	case StateApplyCursor:
		return "applyCursor"
	case StateErasing:
		return "erasing"
	case StateAwaitingScroll:
		return "awaitingScroll"
	default:
		return "unknown"
	}
}
