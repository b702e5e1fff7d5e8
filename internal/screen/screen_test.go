package screen

import "testing"

func TestNewGridBlank(t *testing.T) {
	g, err := New(4, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 10; col++ {
			if g.Read(row, col) != Space {
				t.Fatalf("cell (%d,%d) not blank", row, col)
			}
		}
	}
}

func TestNewGridRejectsTinyDimensions(t *testing.T) {
	if _, err := New(1, 80); err == nil {
		t.Error("expected error for 1 row")
	}
	if _, err := New(24, 0); err == nil {
		t.Error("expected error for 0 cols")
	}
}

func TestWriteRejectsControlBytes(t *testing.T) {
	g, _ := New(4, 10)
	g.Write(1, 1, 'A')
	g.Write(1, 2, 0x07)
	g.Write(1, 3, 0x7F)
	if g.Read(1, 1) != 'A' {
		t.Error("printable write lost")
	}
	if g.Read(1, 2) != Space || g.Read(1, 3) != Space {
		t.Error("non-printable bytes must be stored as spaces")
	}
}

func TestOutOfRangeAccess(t *testing.T) {
	g, _ := New(4, 10)
	g.Write(-1, 0, 'X')
	g.Write(0, 10, 'X')
	g.Write(4, 0, 'X')
	if g.Read(-1, 0) != Space || g.Read(0, 10) != Space {
		t.Error("out-of-range reads should return space")
	}
}

func TestScrollShiftsRowsAndClearsBottom(t *testing.T) {
	g, _ := New(3, 4)
	g.Write(0, 0, 'a')
	g.Write(1, 0, 'b')
	g.Write(2, 0, 'c')

	if !g.RequestScroll() {
		t.Fatal("RequestScroll refused on idle grid")
	}
	if !g.Busy() {
		t.Fatal("grid should be busy after RequestScroll")
	}
	if g.RequestScroll() {
		t.Error("second RequestScroll should be refused while busy")
	}

	// One row moves per tick: 2 copies + 1 clear for a 3-row grid.
	ticks := 0
	for g.Busy() {
		g.Tick()
		ticks++
		if ticks > 10 {
			t.Fatal("scroll did not finish")
		}
	}
	if ticks != 3 {
		t.Errorf("scroll took %d ticks, want 3", ticks)
	}
	if !g.ScrollDone() {
		t.Error("completion pulse missing on final tick")
	}

	if g.Read(0, 0) != 'b' || g.Read(1, 0) != 'c' {
		t.Errorf("rows not shifted: (0,0)=%q (1,0)=%q", g.Read(0, 0), g.Read(1, 0))
	}
	if g.Read(2, 0) != Space {
		t.Error("exposed bottom row not cleared")
	}

	g.Tick()
	if g.ScrollDone() {
		t.Error("completion pulse must last one tick only")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _ := New(2, 2)
	g.Write(0, 0, 'x')
	snap := g.Snapshot()
	g.Write(0, 0, 'y')
	if snap.At(0, 0) != 'x' {
		t.Error("snapshot mutated by later writes")
	}
	if snap.Rows != 2 || snap.Cols != 2 {
		t.Error("snapshot dimensions wrong")
	}
}

func TestResetAbortsScroll(t *testing.T) {
	g, _ := New(3, 3)
	g.Write(0, 0, 'q')
	g.RequestScroll()
	g.Reset()
	if g.Busy() {
		t.Error("reset should abort the scroll")
	}
	if g.Read(0, 0) != Space {
		t.Error("reset should blank the grid")
	}
}
