//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"life-grid/pkg/life"
)

// GridPainter keeps a one-pixel-per-cell image of the board and draws it
// scaled to the cell size with cell borders on top.
type GridPainter struct {
	rows, cols int
	img        *ebiten.Image
	buf        []byte
	palette    Palette
}

// NewGridPainter allocates a painter. The backing image is sized lazily on
// the first Draw and again whenever the board dimensions change.
func NewGridPainter(p Palette) *GridPainter {
	return &GridPainter{palette: p}
}

func (gp *GridPainter) ensure(rows, cols int) {
	if gp.img != nil && gp.rows == rows && gp.cols == cols {
		return
	}
	if gp.img != nil {
		gp.img.Deallocate()
	}
	gp.rows, gp.cols = rows, cols
	gp.buf = make([]byte, 4*rows*cols)
	gp.img = ebiten.NewImage(cols, rows)
}

// Draw paints g onto dst with its top-left corner at (x, y).
func (gp *GridPainter) Draw(dst *ebiten.Image, g life.Grid, x, y float64, cellSize int) {
	if g.Dimensions().Empty() || cellSize <= 0 {
		return
	}
	gp.ensure(g.Rows(), g.Cols())
	fillBinaryRGBA(gp.buf, g, gp.palette.Alive, gp.palette.Dead)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(cellSize), float64(cellSize))
	op.GeoM.Translate(x, y)
	dst.DrawImage(gp.img, op)

	cs := float32(cellSize)
	w := cs * float32(g.Cols())
	h := cs * float32(g.Rows())
	x0, y0 := float32(x), float32(y)
	for j := 0; j <= g.Cols(); j++ {
		lx := x0 + float32(j)*cs
		vector.StrokeLine(dst, lx, y0, lx, y0+h, 1, gp.palette.Border, false)
	}
	for i := 0; i <= g.Rows(); i++ {
		ly := y0 + float32(i)*cs
		vector.StrokeLine(dst, x0, ly, x0+w, ly, 1, gp.palette.Border, false)
	}
}
