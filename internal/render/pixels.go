package render

import (
	"image/color"

	"life-grid/pkg/life"
)

// fillBinaryRGBA converts a board into RGBA pixels in buf, one pixel per
// cell in row-major order. buf must hold 4*rows*cols bytes.
func fillBinaryRGBA(buf []byte, g life.Grid, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	cols := g.Cols()
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < cols; j++ {
			base := (i*cols + j) * 4
			if g.Alive(i, j) {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}

// Palette holds the board colours.
type Palette struct {
	Alive      color.Color
	Dead       color.Color
	Border     color.Color
	Background color.Color
}

// DefaultPalette is brown live cells with gray borders on a cream page.
func DefaultPalette() Palette {
	return Palette{
		Alive:      color.RGBA{R: 0x5c, G: 0x40, B: 0x33, A: 0xff},
		Dead:       color.RGBA{R: 0xfa, G: 0xf3, B: 0xe6, A: 0xff},
		Border:     color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		Background: color.RGBA{R: 0xf0, G: 0xe6, B: 0xd2, A: 0xff},
	}
}
