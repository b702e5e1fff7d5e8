// Package screen implements the character-cell grid the command interpreter
// writes into and display front-ends read from.
//
// The grid honors three invariants:
//
//   - Every cell always holds a printable code (0x20-0x7E); writes of
//     anything else store a space.
//   - Scrolling runs one row per tick, so Busy is observable by the
//     interpreter and readers sequenced against it never see a partially
//     shifted frame.
//   - Renderers running on their own cadence consume Snapshot, which copies
//     committed tick-boundary state only.
package screen

import "fmt"

// Default grid dimensions.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// Space is the fill value for erased and newly exposed cells.
const Space byte = 0x20

// printable reports whether b may be stored in a cell.
func printable(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

// Grid is the ROWS x COLS character store. The command interpreter is its
// only writer; display code reads it via Read or Snapshot.
type Grid struct {
	rows, cols int
	cells      []byte

	scrolling bool
	scrollRow int
	done      bool
}

// New returns a grid of the given dimensions with every cell blanked.
func New(rows, cols int) (*Grid, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("grid must be at least 2x2, got %dx%d", rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]byte, rows*cols)}
	g.blank()
	return g, nil
}

func (g *Grid) blank() {
	for i := range g.cells {
		g.cells[i] = Space
	}
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Read returns the cell at (row, col). Out-of-range coordinates read as
// space.
func (g *Grid) Read(row, col int) byte {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Space
	}
	return g.cells[row*g.cols+col]
}

// Write stores b at (row, col), substituting a space for non-printable
// values. Out-of-range coordinates are ignored.
func (g *Grid) Write(row, col int, b byte) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	if !printable(b) {
		b = Space
	}
	g.cells[row*g.cols+col] = b
}

// RequestScroll begins shifting the visible rows up by one; the bottom row
// is cleared once exposed. Returns false if a scroll is already running.
func (g *Grid) RequestScroll() bool {
	if g.scrolling {
		return false
	}
	g.scrolling = true
	g.scrollRow = 0
	return true
}

// Busy reports whether a scroll is in progress.
func (g *Grid) Busy() bool {
	return g.scrolling
}

// ScrollDone reports the completion pulse: true only on the tick the scroll
// finished.
func (g *Grid) ScrollDone() bool {
	return g.done
}

// Tick advances the scroll by one row.
func (g *Grid) Tick() {
	g.done = false
	if !g.scrolling {
		return
	}
	if g.scrollRow < g.rows-1 {
		src := (g.scrollRow + 1) * g.cols
		dst := g.scrollRow * g.cols
		copy(g.cells[dst:dst+g.cols], g.cells[src:src+g.cols])
		g.scrollRow++
		return
	}
	last := (g.rows - 1) * g.cols
	for i := last; i < last+g.cols; i++ {
		g.cells[i] = Space
	}
	g.scrolling = false
	g.done = true
}

// Reset blanks the grid and aborts any scroll in progress.
func (g *Grid) Reset() {
	g.blank()
	g.scrolling = false
	g.done = false
}

// Snapshot is a committed copy of the grid for readers on a slower cadence.
type Snapshot struct {
	Rows, Cols int
	Cells      []byte
}

// At returns the snapshot cell at (row, col).
func (s Snapshot) At(row, col int) byte {
	return s.Cells[row*s.Cols+col]
}

// Snapshot copies the current grid contents. Call between ticks.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]byte, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{Rows: g.rows, Cols: g.cols, Cells: cells}
}
