package universe

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewSeedPattern(t *testing.T) {
	u := New()
	if u.Width() != 64 || u.Height() != 64 || u.Len() != 64*64 {
		t.Fatalf("unexpected size %v x %v (%v cells)", u.Width(), u.Height(), u.Len())
	}

	cells := u.Cells()
	expects := map[int]Cell{0: Alive, 1: Dead, 7: Alive, 9: Dead, 14: Alive, 21: Alive, 35: Alive}
	for i, want := range expects {
		if cells[i] != want {
			t.Errorf("cell %d = %v, expected %v", i, cells[i], want)
		}
	}
	for i, c := range cells {
		want := Dead
		if i%2 == 0 || i%7 == 0 {
			want = Alive
		}
		if c != want {
			t.Fatalf("cell %d = %v, expected %v", i, c, want)
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	if !New().Equal(New()) {
		t.Fatal("two seeded universes differ")
	}
	if !NewSized(9, 4).Equal(NewSized(9, 4)) {
		t.Fatal("two seeded 9x4 universes differ")
	}
	if New().Equal(NewSized(64, 32)) {
		t.Fatal("universes of different size are equal")
	}
}

func TestZeroDimensionPanics(t *testing.T) {
	mustPanic(t, "zero width", func() { Empty(0, 4) })
	mustPanic(t, "zero height", func() { NewSized(4, 0) })
	mustPanic(t, "too large", func() { Empty(math.MaxUint32, math.MaxUint32) })
}

func TestIndex(t *testing.T) {
	u := Empty(10, 5)
	tests := []struct {
		x, y uint32
		want int
	}{
		{0, 0, 0},
		{9, 0, 9},
		{0, 1, 10},
		{3, 2, 23},
		{9, 4, 49},
	}
	for _, tt := range tests {
		if got := u.Index(tt.x, tt.y); got != tt.want {
			t.Errorf("Index(%d, %d) = %d, expected %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLiveNeighborCountInterior(t *testing.T) {
	u := Empty(3, 3)
	u.Settle([][2]uint32{{0, 0}, {2, 0}, {1, 2}, {2, 2}})
	if got := u.LiveNeighborCount(1, 1); got != 4 {
		t.Fatalf("count = %d, expected 4", got)
	}

	//the centre is not counted
	u.Set(1, 1, Alive)
	if got := u.LiveNeighborCount(1, 1); got != 4 {
		t.Fatalf("count with live centre = %d, expected 4", got)
	}

	u.Clear()
	for y := uint32(0); y < 3; y++ {
		for x := uint32(0); x < 3; x++ {
			u.Set(x, y, Alive)
		}
	}
	if got := u.LiveNeighborCount(1, 1); got != 8 {
		t.Fatalf("full count = %d, expected 8", got)
	}
}

func TestLiveNeighborCountClamped(t *testing.T) {
	u := Empty(4, 4)
	//cells a wrapping grid would count as neighbours of (0, 0)
	u.Settle([][2]uint32{{3, 3}, {3, 0}, {0, 3}, {3, 1}, {1, 3}})
	if got := u.LiveNeighborCount(0, 0); got != 0 {
		t.Fatalf("corner count = %d, expected 0", got)
	}

	for i := range u.cells {
		u.cells[i] = Alive
	}
	tests := []struct {
		x, y uint32
		want uint32
	}{
		{0, 0, 3},
		{3, 0, 3},
		{0, 3, 3},
		{3, 3, 3},
		{1, 0, 5},
		{0, 2, 5},
		{3, 1, 5},
		{2, 3, 5},
		{1, 1, 8},
		{2, 2, 8},
	}
	for _, tt := range tests {
		if got := u.LiveNeighborCount(tt.x, tt.y); got != tt.want {
			t.Errorf("LiveNeighborCount(%d, %d) = %d, expected %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLiveNeighborCountSingleRow(t *testing.T) {
	u := Empty(3, 1)
	u.Settle([][2]uint32{{0, 0}, {2, 0}})
	if got := u.LiveNeighborCount(1, 0); got != 2 {
		t.Fatalf("count = %d, expected 2", got)
	}
	if got := u.LiveNeighborCount(0, 0); got != 0 {
		t.Fatalf("count = %d, expected 0", got)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	u := Empty(4, 3)
	mustPanic(t, "x out of range", func() { u.LiveNeighborCount(4, 0) })
	mustPanic(t, "y out of range", func() { u.LiveNeighborCount(0, 3) })
	mustPanic(t, "Cell out of range", func() { u.Cell(5, 5) })
	mustPanic(t, "Set out of range", func() { u.Set(0, 3, Alive) })
}

func TestNextState(t *testing.T) {
	tests := []struct {
		name  string
		cell  Cell
		count uint32
		want  Cell
	}{
		{"underpopulation 0", Alive, 0, Dead},
		{"underpopulation 1", Alive, 1, Dead},
		{"survival 2", Alive, 2, Alive},
		{"survival 3", Alive, 3, Alive},
		{"overpopulation 4", Alive, 4, Dead},
		{"overpopulation 8", Alive, 8, Dead},
		{"birth", Dead, 3, Alive},
		{"dead 0", Dead, 0, Dead},
		{"dead 2", Dead, 2, Dead},
		{"dead 4", Dead, 4, Dead},
		{"dead 8", Dead, 8, Dead},
		{"unknown state", Cell(7), 3, Cell(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextState(tt.cell, tt.count); got != tt.want {
				t.Fatalf("nextState(%v, %d) = %v, expected %v", tt.cell, tt.count, got, tt.want)
			}
		})
	}
}

func TestTickRules(t *testing.T) {
	tests := []struct {
		name      string
		neighbors [][2]uint32
		centre    Cell
		want      Cell
	}{
		{"underpopulation", [][2]uint32{{0, 0}}, Alive, Dead},
		{"survival 2", [][2]uint32{{0, 0}, {2, 2}}, Alive, Alive},
		{"survival 3", [][2]uint32{{0, 0}, {2, 2}, {0, 2}}, Alive, Alive},
		{"overpopulation", [][2]uint32{{0, 0}, {2, 2}, {0, 2}, {2, 0}}, Alive, Dead},
		{"birth", [][2]uint32{{0, 0}, {2, 2}, {0, 2}}, Dead, Alive},
		{"no birth with 2", [][2]uint32{{0, 0}, {2, 2}}, Dead, Dead},
		{"no birth with 4", [][2]uint32{{0, 0}, {2, 2}, {0, 2}, {2, 0}}, Dead, Dead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Empty(3, 3)
			u.Settle(tt.neighbors)
			u.Set(1, 1, tt.centre)
			u.Tick()
			if got := u.Cell(1, 1); got != tt.want {
				t.Fatalf("centre = %v, expected %v", got, tt.want)
			}
		})
	}
}

//expectedNext computes the next generation from a copy of the cells with an independent loop
func expectedNext(w, h int, cells []Cell) []Cell {
	next := make([]Cell, len(cells))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					n += int(cells[ny*w+nx])
				}
			}
			alive := cells[y*w+x] == Alive
			if (alive && (n == 2 || n == 3)) || (!alive && n == 3) {
				next[y*w+x] = Alive
			}
		}
	}
	return next
}

func TestTickUsesSnapshot(t *testing.T) {
	u := Empty(5, 5)
	u.Settle([][2]uint32{{0, 0}, {1, 0}, {2, 1}, {1, 2}, {2, 2}, {3, 2}, {4, 4}, {4, 3}, {0, 4}})
	before := u.Cells()
	want := expectedNext(5, 5, before)

	u.Tick()
	got := u.Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestTickMatchesReferenceOnRandomGrids(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for n := 0; n < 20; n++ {
		w, h := 1+r.IntN(12), 1+r.IntN(12)
		u := Empty(uint32(w), uint32(h))
		u.Randomize(r)
		want := expectedNext(w, h, u.Cells())
		u.Tick()
		got := u.Cells()
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%dx%d grid: cell %d = %v, expected %v", w, h, i, got[i], want[i])
			}
		}
	}
}

func TestIsolatedCellDies(t *testing.T) {
	u := Empty(5, 5)
	u.Set(2, 2, Alive)
	live, changed := u.Advance()
	if live != 0 || !changed {
		t.Fatalf("live=%d changed=%v, expected 0 true", live, changed)
	}
	if u.Cell(2, 2) != Dead {
		t.Fatal("isolated cell survived")
	}
}

func TestBlockIsStillLife(t *testing.T) {
	tmpl, ok := LookupTemplate("block")
	if !ok {
		t.Fatal("block template is missing")
	}
	u := Empty(4, 4)
	u.SettleTemplate(tmpl)
	want := u.Cells()
	for i := 0; i < 10; i++ {
		live, changed := u.Advance()
		if live != 4 || changed {
			t.Fatalf("tick %d: live=%d changed=%v", i, live, changed)
		}
	}
	got := u.Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d changed", i)
		}
	}
}

func TestBlockInCorner(t *testing.T) {
	u := Empty(2, 2)
	u.Settle([][2]uint32{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	u.Tick()
	if u.LiveCells() != 4 {
		t.Fatalf("live cells = %d, expected 4", u.LiveCells())
	}
}

func TestBlinkerOscillation(t *testing.T) {
	tmpl, _ := LookupTemplate("blinker")
	u := Empty(5, 5)
	u.SettleTemplate(tmpl)
	start := u.Cells()

	u.Tick()
	for x := uint32(0); x < 5; x++ {
		for y := uint32(0); y < 5; y++ {
			want := Dead
			if y == 2 && x >= 1 && x <= 3 {
				want = Alive
			}
			if got := u.Cell(x, y); got != want {
				t.Fatalf("cell (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}

	u.Tick()
	got := u.Cells()
	for i := range start {
		if got[i] != start[i] {
			t.Fatalf("after second tick cell %d = %v, expected %v", i, got[i], start[i])
		}
	}
}

func TestRender(t *testing.T) {
	u := Empty(5, 3)
	u.Settle([][2]uint32{{0, 0}, {4, 1}, {2, 2}})
	out := u.Render()
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("render misses the last line break")
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	want := []string{"◼◻◻◻◻", "◻◻◻◻◼", "◻◻◼◻◻"}
	for y, l := range lines {
		if n := utf8.RuneCountInString(l); n != 5 {
			t.Fatalf("line %d has %d glyphs, expected 5", y, n)
		}
		if l != want[y] {
			t.Errorf("line %d = %q, expected %q", y, l, want[y])
		}
	}
	if u.String() != out {
		t.Fatal("String differs from Render")
	}
}

func TestRenderDefaultShape(t *testing.T) {
	u := New()
	lines := strings.Split(strings.TrimSuffix(u.Render(), "\n"), "\n")
	if len(lines) != 64 {
		t.Fatalf("got %d lines, expected 64", len(lines))
	}
	cells := u.Cells()
	for y, l := range lines {
		for x, g := range []rune(l) {
			if g != cells[y*64+x].Glyph() {
				t.Fatalf("glyph (%d,%d) = %q does not match the cell", x, y, g)
			}
		}
	}
}

func TestToggleAndSettle(t *testing.T) {
	u := Empty(3, 3)
	u.Settle([][2]uint32{{1, 1}, {5, 1}, {1, 9}})
	if u.LiveCells() != 1 {
		t.Fatalf("live cells = %d, expected 1", u.LiveCells())
	}
	u.Toggle(1, 1)
	u.Toggle(0, 2)
	u.Toggle(3, 3)
	if u.Cell(1, 1) != Dead || u.Cell(0, 2) != Alive || u.LiveCells() != 1 {
		t.Fatalf("unexpected grid after toggle:\n%s", u)
	}
	u.Clear()
	if u.LiveCells() != 0 {
		t.Fatal("clear left live cells")
	}
}

func TestCellsIsACopy(t *testing.T) {
	u := Empty(2, 2)
	c := u.Cells()
	c[0] = Alive
	if u.Cell(0, 0) != Dead {
		t.Fatal("Cells exposes the internal buffer")
	}
}

func TestTemplates(t *testing.T) {
	names := Templates()
	if len(names) != 4 || names[0] != "blinker" {
		t.Fatalf("unexpected templates %v", names)
	}
	if _, ok := LookupTemplate("gosper"); ok {
		t.Fatal("unknown template found")
	}
}

func TestAdvanceCoordinatesOnWideGrid(t *testing.T) {
	//a wide single row, the last cells only count their left neighbours
	const w = 70000
	u := Empty(w, 1)
	u.Settle([][2]uint32{{w - 3, 0}, {w - 2, 0}, {w - 1, 0}})
	live, changed := u.Advance()
	if live != 1 || !changed {
		t.Fatalf("live=%d changed=%v, expected 1 true", live, changed)
	}
	if u.Cell(w-2, 0) != Alive || u.Cell(w-1, 0) != Dead || u.Cell(w-3, 0) != Dead {
		t.Fatal("unexpected row end after tick")
	}
}
