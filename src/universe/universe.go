package universe

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

//default dimensions of the seeded universe
const (
	DefWidth  = 64
	DefHeight = 64
)

//Universe is a fixed size grid of cells with clamped edges
//cells are stored row-major, the cell (x, y) lives at y*width+x
//
//a Universe has no internal locking, only one owner may tick or read it at a time
type Universe struct {
	width  uint32
	height uint32
	cells  []Cell
	//next is the buffer the following generation is written to
	next []Cell
}

//New creates the default 64x64 universe with the seed pattern
func New() *Universe {
	return NewSized(DefWidth, DefHeight)
}

//NewSized creates the universe of the given size with the seed pattern:
//the cell at flat index i is alive when i is divisible by 2 or by 7
func NewSized(width uint32, height uint32) *Universe {
	u := Empty(width, height)
	for i := range u.cells {
		if i%2 == 0 || i%7 == 0 {
			u.cells[i] = Alive
		}
	}
	return u
}

//Empty creates the universe with all cells dead
//panics when one of the dimensions is zero
func Empty(width uint32, height uint32) *Universe {
	if width == 0 || height == 0 {
		panic(fmt.Sprintf("universe: invalid dimension %v x %v", width, height))
	}
	if uint64(width)*uint64(height) > uint64(math.MaxInt) {
		panic(fmt.Sprintf("universe: dimension %v x %v is too large", width, height))
	}
	n := int(width) * int(height)
	return &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, n),
		next:   make([]Cell, n),
	}
}

//Width returns the number of columns
func (u *Universe) Width() uint32 { return u.width }

//Height returns the number of rows
func (u *Universe) Height() uint32 { return u.height }

//Len returns the number of cells
func (u *Universe) Len() int { return len(u.cells) }

//Index maps the coordinates to the flat cell index
//coordinates are not validated
func (u *Universe) Index(x uint32, y uint32) int {
	return int(y)*int(u.width) + int(x)
}

//Cell returns the state of the cell at x, y
func (u *Universe) Cell(x uint32, y uint32) Cell {
	u.mustContain(x, y)
	return u.cells[u.Index(x, y)]
}

//Set sets the state of the cell at x, y
func (u *Universe) Set(x uint32, y uint32, c Cell) {
	u.mustContain(x, y)
	u.cells[u.Index(x, y)] = c
}

//Toggle inverses the cell state at x, y, out of range coordinates are ignored
func (u *Universe) Toggle(x uint32, y uint32) {
	if !u.contains(x, y) {
		return
	}
	i := u.Index(x, y)
	u.cells[i] ^= Alive
}

//Settle makes the cells at the given [x, y] coordinates alive
//coordinates outside the grid are skipped
func (u *Universe) Settle(coords [][2]uint32) {
	for _, c := range coords {
		if !u.contains(c[0], c[1]) {
			continue
		}
		u.cells[u.Index(c[0], c[1])] = Alive
	}
}

//SettleTemplate populates the universe with the template cells
func (u *Universe) SettleTemplate(t Template) {
	u.Settle(t.Coordinates)
}

//Randomize sets every cell to a random state
func (u *Universe) Randomize(r *rand.Rand) {
	for i := range u.cells {
		u.cells[i] = Cell(r.IntN(2))
	}
}

//Clear kills all cells
func (u *Universe) Clear() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
}

//Cells returns a copy of the cells buffer
func (u *Universe) Cells() []Cell {
	c := make([]Cell, len(u.cells))
	copy(c, u.cells)
	return c
}

//LiveCells counts alive cells
func (u *Universe) LiveCells() int {
	n := 0
	for _, c := range u.cells {
		n += int(c)
	}
	return n
}

//LiveNeighborCount counts alive cells around x, y
//the neighbourhood is clamped to the grid: a corner cell has 3 neighbours, an edge cell 5
//panics when x, y are outside the grid
func (u *Universe) LiveNeighborCount(x uint32, y uint32) uint32 {
	u.mustContain(x, y)
	x1, x2 := span(x, u.width)
	y1, y2 := span(y, u.height)
	count := uint32(0)
	for ny := y1; ny <= y2; ny++ {
		for nx := x1; nx <= x2; nx++ {
			//skip my position
			if nx == x && ny == y {
				continue
			}
			count += uint32(u.cells[u.Index(nx, ny)])
		}
	}
	return count
}

//Tick advances the universe by one generation
func (u *Universe) Tick() {
	u.Advance()
}

//Advance computes the next generation from the current one and replaces it
//returns the number of live cells in the new generation and whether any cell changed
func (u *Universe) Advance() (live int, changed bool) {
	w := int(u.width)
	for i, c := range u.cells {
		x := uint32(i % w)
		y := uint32(i / w)
		n := nextState(c, u.LiveNeighborCount(x, y))
		u.next[i] = n
		live += int(n)
		changed = changed || n != c
	}
	u.cells, u.next = u.next, u.cells
	return
}

//Render draws the grid as text, one line per row
func (u *Universe) Render() string {
	var b strings.Builder
	w := int(u.width)
	b.Grow(len(u.cells)*len(string(AliveGlyph)) + int(u.height))
	for i, c := range u.cells {
		b.WriteRune(c.Glyph())
		if (i+1)%w == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (u *Universe) String() string {
	return u.Render()
}

//Equal reports whether both universes have the same size and the same cells
func (u *Universe) Equal(o *Universe) bool {
	if o == nil || u.width != o.width || u.height != o.height {
		return false
	}
	for i := range u.cells {
		if u.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (u *Universe) contains(x uint32, y uint32) bool {
	return x < u.width && y < u.height
}

func (u *Universe) mustContain(x uint32, y uint32) {
	if !u.contains(x, y) {
		panic(fmt.Sprintf("universe: cell %v,%v is outside the %v x %v grid", x, y, u.width, u.height))
	}
}

//span returns the clamped [v-1, v+1] range inside [0, size-1]
func span(v uint32, size uint32) (lo uint32, hi uint32) {
	lo, hi = v, v
	if v > 0 {
		lo = v - 1
	}
	if v+1 < size {
		hi = v + 1
	}
	return
}
