// Package life holds the Game of Life board model: immutable grids, viewport
// sizing and the synchronous step function.
package life

import (
	"bytes"
	"strings"
)

// Cell addresses one board position by row and column.
type Cell struct {
	Row, Col int
}

// Dimensions is the row/column extent of a board.
type Dimensions struct {
	Rows int
	Cols int
}

// Clamp returns d with negative axes raised to zero.
func (d Dimensions) Clamp() Dimensions {
	return Dimensions{Rows: max(d.Rows, 0), Cols: max(d.Cols, 0)}
}

// Empty reports whether a board of these dimensions has no cells.
func (d Dimensions) Empty() bool {
	return d.Rows <= 0 || d.Cols <= 0
}

// Contains reports whether (i, j) addresses a cell inside d.
func (d Dimensions) Contains(i, j int) bool {
	return i >= 0 && i < d.Rows && j >= 0 && j < d.Cols
}

// ComputeDimensions derives the board size that fits a viewport once margin
// is reserved: rows = floor((height-margin)/cellSize) and likewise for
// columns. The result is not clamped; small viewports produce negative
// values and callers clamp before allocating.
func ComputeDimensions(viewportWidth, viewportHeight, cellSize, margin int) Dimensions {
	if cellSize <= 0 {
		return Dimensions{}
	}
	return Dimensions{
		Rows: floorDiv(viewportHeight-margin, cellSize),
		Cols: floorDiv(viewportWidth-margin, cellSize),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Grid is an immutable board of binary cells stored in row-major order. The
// zero value is a valid 0×0 board. Operations that change cells return a new
// Grid, so a Grid handed to a renderer never changes underneath it.
type Grid struct {
	rows, cols int
	cells      []uint8
}

// EmptyGrid returns an all-dead board. Negative dimensions clamp to zero.
func EmptyGrid(rows, cols int) Grid {
	d := Dimensions{Rows: rows, Cols: cols}.Clamp()
	return Grid{rows: d.Rows, cols: d.Cols, cells: make([]uint8, d.Rows*d.Cols)}
}

// FromRows builds a Grid from nested rows. Any non-zero value is alive. Short
// rows are padded with dead cells up to the widest row.
func FromRows(src [][]uint8) Grid {
	cols := 0
	for _, row := range src {
		cols = max(cols, len(row))
	}
	g := EmptyGrid(len(src), cols)
	for i, row := range src {
		for j, v := range row {
			if v != 0 {
				g.cells[i*cols+j] = 1
			}
		}
	}
	return g
}

// WithCells returns a rows×cols board where the listed cells are alive.
// Cells outside the board are ignored.
func WithCells(rows, cols int, alive ...Cell) Grid {
	g := EmptyGrid(rows, cols)
	for _, c := range alive {
		if g.Dimensions().Contains(c.Row, c.Col) {
			g.cells[g.index(c.Row, c.Col)] = 1
		}
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// Dimensions returns the board extent.
func (g Grid) Dimensions() Dimensions { return Dimensions{Rows: g.rows, Cols: g.cols} }

func (g Grid) index(i, j int) int { return i*g.cols + j }

// Alive reports whether cell (i, j) is alive. Out-of-bounds cells are dead.
func (g Grid) Alive(i, j int) bool {
	if !g.Dimensions().Contains(i, j) {
		return false
	}
	return g.cells[g.index(i, j)] != 0
}

// Population counts the live cells.
func (g Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Cells returns a copy of the row-major cell values.
func (g Grid) Cells() []uint8 {
	return append([]uint8(nil), g.cells...)
}

// Rows2D returns a copy of the board as nested rows.
func (g Grid) Rows2D() [][]uint8 {
	out := make([][]uint8, g.rows)
	for i := range out {
		out[i] = append([]uint8(nil), g.cells[i*g.cols:(i+1)*g.cols]...)
	}
	return out
}

// Equal reports whether both boards have the same dimensions and cells.
func (g Grid) Equal(other Grid) bool {
	return g.rows == other.rows && g.cols == other.cols && bytes.Equal(g.cells, other.cells)
}

// String renders the board with '#' for live and '.' for dead cells.
func (g Grid) String() string {
	var b strings.Builder
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if g.cells[g.index(i, j)] != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
