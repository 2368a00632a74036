package universe

//Cell is the state of one grid position
//the numeric values are stable: neighbour counts are plain sums of cells
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//glyphs used by Render
const (
	DeadGlyph  = '◻'
	AliveGlyph = '◼'
)

//Glyph returns the rune used to render the cell
func (c Cell) Glyph() rune {
	if c == Dead {
		return DeadGlyph
	}
	return AliveGlyph
}

func (c Cell) String() string {
	return string(c.Glyph())
}
