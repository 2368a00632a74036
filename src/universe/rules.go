package universe

//nextState applies the Life rule to a cell with count live neighbours
func nextState(c Cell, count uint32) Cell {
	switch {
	case c == Alive && count < 2:
		//underpopulation
		return Dead
	case c == Alive && count <= 3:
		return Alive
	case c == Alive:
		//overpopulation
		return Dead
	case c == Dead && count == 3:
		//birth
		return Alive
	case c == Dead:
		return Dead
	}
	return c
}
