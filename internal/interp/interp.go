package interp

import "github.com/dshills/vt52/internal/arbiter"

// Control bytes handled in the normal state.
const (
	ctrlBell      = 0x07
	ctrlBackspace = 0x08
	ctrlTab       = 0x09
	ctrlLineFeed  = 0x0A
	ctrlReturn    = 0x0D
	ctrlEscape    = 0x1B
)

// tabStop is the column interval of the fixed tab stops.
const tabStop = 8

// Grid is the character store the interpreter writes into. Implemented by
// screen.Grid.
type Grid interface {
	Rows() int
	Cols() int
	Write(row, col int, b byte)
	RequestScroll() bool
	Busy() bool
}

// Config holds the escape-sequence timeouts in ticks. A partial sequence is
// abandoned when no follow-up byte arrives within the window for its origin.
type Config struct {
	// KeyboardTimeoutTicks bounds keyboard-origin sequences (~5 s).
	KeyboardTimeoutTicks int

	// SerialTimeoutTicks bounds serial-origin sequences (~1 s).
	SerialTimeoutTicks int
}

// Interpreter is the escape-sequence state machine. It owns the cursor and
// is the grid's only writer.
type Interpreter struct {
	grid   Grid
	config Config

	state    State
	row, col int

	// Pending ESC Y argument and the origin of the open sequence.
	pendingRow int
	origin     arbiter.Origin
	timeout    int

	// Erase range in absolute cell addresses, inclusive.
	eraseNext, eraseLast int

	// bell, if set, is invoked for BEL bytes.
	bell func()
}

// New returns an interpreter over the given grid.
func New(grid Grid, config Config) *Interpreter {
	return &Interpreter{grid: grid, config: config}
}

// OnBell registers a hook invoked whenever a BEL byte is interpreted.
func (in *Interpreter) OnBell(fn func()) {
	in.bell = fn
}

// State returns the active state. Read-only observability for tests and
// front-ends.
func (in *Interpreter) State() State {
	return in.state
}

// Cursor returns the committed cursor position.
func (in *Interpreter) Cursor() (row, col int) {
	return in.row, in.col
}

// Ready reports whether the interpreter can accept a byte this tick. It is
// not ready while erasing, waiting out a scroll, committing a cursor
// address, or while the grid itself is busy.
func (in *Interpreter) Ready() bool {
	if in.grid.Busy() {
		return false
	}
	switch in.state {
	case StateNormal, StateEscape, StateAwaitRow, StateAwaitCol:
		return true
	default:
		return false
	}
}

// Reset returns the interpreter to the normal state with the cursor home.
// The grid is not touched.
func (in *Interpreter) Reset() {
	in.state = StateNormal
	in.row, in.col = 0, 0
	in.timeout = 0
}

// Consume feeds one byte into the state machine. Call only while Ready; the
// origin selects the timeout for any sequence the byte opens or continues.
func (in *Interpreter) Consume(b byte, origin arbiter.Origin) {
	switch in.state {
	case StateNormal:
		in.normalByte(b, origin)
	case StateEscape:
		in.escapeByte(b)
	case StateAwaitRow:
		in.pendingRow = int(b)
		in.enterSequenceState(StateAwaitCol)
	case StateAwaitCol:
		in.applyCursorArgs(in.pendingRow, int(b))
	}
}

// Tick advances internal work: erase stepping, scroll waiting, cursor
// commits, and the sequence timeout.
func (in *Interpreter) Tick() {
	switch in.state {
	case StateEscape, StateAwaitRow, StateAwaitCol:
		if in.timeout > 0 {
			in.timeout--
			if in.timeout == 0 {
				// Lost or split sequence; drop it and move on.
				in.state = StateNormal
			}
		}

	case StateApplyCursor:
		in.state = StateNormal

	case StateErasing:
		if in.grid.Busy() {
			return
		}
		cols := in.grid.Cols()
		in.grid.Write(in.eraseNext/cols, in.eraseNext%cols, ' ')
		in.eraseNext++
		if in.eraseNext > in.eraseLast {
			in.state = StateNormal
		}

	case StateAwaitingScroll:
		if !in.grid.Busy() {
			in.state = StateNormal
		}
	}
}

// normalByte handles one byte in the normal state.
func (in *Interpreter) normalByte(b byte, origin arbiter.Origin) {
	switch {
	case b >= 0x20 && b <= 0x7E:
		in.printable(b)

	case b == ctrlEscape:
		in.origin = origin
		in.enterSequenceState(StateEscape)

	case b == ctrlBackspace:
		if in.col > 0 {
			in.col--
		}

	case b == ctrlTab:
		next := (in.col/tabStop + 1) * tabStop
		if next > in.grid.Cols()-1 {
			next = in.grid.Cols() - 1
		}
		in.col = next

	case b == ctrlLineFeed:
		if in.row == in.grid.Rows()-1 {
			in.requestScroll()
		} else {
			in.row++
		}

	case b == ctrlReturn:
		in.col = 0

	case b == ctrlBell:
		if in.bell != nil {
			in.bell()
		}
	}
}

// printable writes b at the cursor and advances it. At the end of the last
// row the grid scrolls and the cursor column is left unchanged.
func (in *Interpreter) printable(b byte) {
	in.grid.Write(in.row, in.col, b)
	if in.col < in.grid.Cols()-1 {
		in.col++
		return
	}
	if in.row == in.grid.Rows()-1 {
		in.requestScroll()
		return
	}
	in.row++
	in.col = 0
}

// escapeByte dispatches the byte following ESC.
func (in *Interpreter) escapeByte(b byte) {
	in.state = StateNormal
	switch b {
	case 'A': // cursor up, clamped
		if in.row > 0 {
			in.row--
		}
	case 'B': // cursor down, clamped
		if in.row < in.grid.Rows()-1 {
			in.row++
		}
	case 'C': // cursor right, clamped
		if in.col < in.grid.Cols()-1 {
			in.col++
		}
	case 'D': // cursor left, clamped
		if in.col > 0 {
			in.col--
		}
	case 'H': // home
		in.row, in.col = 0, 0
	case 'I': // reverse linefeed
		if in.row == 0 {
			in.requestScroll()
		} else {
			in.row--
		}
	case 'J': // erase screen and home
		in.row, in.col = 0, 0
		in.eraseNext = 0
		in.eraseLast = in.grid.Rows()*in.grid.Cols() - 1
		in.state = StateErasing
	case 'K': // erase to end of line, cursor unmoved
		in.eraseNext = in.row*in.grid.Cols() + in.col
		in.eraseLast = in.row*in.grid.Cols() + in.grid.Cols() - 1
		in.state = StateErasing
	case 'Y': // direct cursor address
		in.enterSequenceState(StateAwaitRow)
	default:
		// Unrecognized sequence; ignored.
	}
}

// applyCursorArgs validates the ESC Y arguments and stages the commit. An
// out-of-range argument is replaced by the current coordinate; the sequence
// itself is never aborted.
func (in *Interpreter) applyCursorArgs(rowArg, colArg int) {
	row := rowArg - 0x20
	if row < 0 || row >= in.grid.Rows() {
		row = in.row
	}
	col := colArg - 0x20
	if col < 0 || col >= in.grid.Cols() {
		col = in.col
	}
	// Both coordinates commit together.
	in.row, in.col = row, col
	in.state = StateApplyCursor
}

// enterSequenceState opens or continues a multi-byte sequence, rearming the
// origin-specific timeout.
func (in *Interpreter) enterSequenceState(s State) {
	in.state = s
	if in.origin == arbiter.OriginSerial {
		in.timeout = in.config.SerialTimeoutTicks
	} else {
		in.timeout = in.config.KeyboardTimeoutTicks
	}
}

// requestScroll hands the row shift to the grid and waits for completion.
func (in *Interpreter) requestScroll() {
	in.grid.RequestScroll()
	in.state = StateAwaitingScroll
}
