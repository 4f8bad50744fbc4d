package life

// Step advances the board by one generation using B3/S23 on the Moore
// neighbourhood. Edges do not wrap: neighbours outside the board count as
// dead. Every cell is computed from g alone, so the update is synchronous.
func Step(g Grid) Grid {
	if g.Dimensions().Empty() {
		return g
	}
	rows, cols := g.rows, g.cols
	next := make([]uint8, len(g.cells))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			next[idx] = nextState(g.cells[idx] != 0, g.neighbors(i, j))
		}
	}
	return Grid{rows: rows, cols: cols, cells: next}
}

func nextState(alive bool, neighbors int) uint8 {
	if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
		return 1
	}
	return 0
}

func (g Grid) neighbors(i, j int) int {
	minI, maxI := max(0, i-1), min(g.rows-1, i+1)
	minJ, maxJ := max(0, j-1), min(g.cols-1, j+1)
	n := 0
	for y := minI; y <= maxI; y++ {
		for x := minJ; x <= maxJ; x++ {
			if y == i && x == j {
				continue
			}
			n += int(g.cells[y*g.cols+x])
		}
	}
	return n
}

// ToggleCell returns a copy of g with cell (i, j) flipped. Coordinates outside
// the board return g unchanged; a toggle can race with a resize that shrank
// the board.
func ToggleCell(g Grid, i, j int) Grid {
	if !g.Dimensions().Contains(i, j) {
		return g
	}
	cells := g.Cells()
	cells[g.index(i, j)] ^= 1
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}
