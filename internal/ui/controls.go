//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"life-grid/internal/controller"
)

// Controls draws the Start/Stop and Clear buttons and a status line above
// the board.
type Controls struct {
	face text.Face
}

// NewControls constructs the button bar.
func NewControls() *Controls {
	return &Controls{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw paints the bar for the given layout and state.
func (c *Controls) Draw(screen *ebiten.Image, l Layout, s controller.Snapshot, hover Target) {
	run := LabelStart
	if s.Running {
		run = LabelStop
	}
	c.drawButton(screen, l.RunButton(), run, hover == TargetRun)
	c.drawButton(screen, l.ClearButton(), LabelClear, hover == TargetClear)

	sx, sy := l.StatusOrigin()
	status := fmt.Sprintf("Gen %d  Alive %d  %dx%d", s.Generation, s.Grid.Population(), s.Grid.Rows(), s.Grid.Cols())
	c.drawText(screen, status, float64(sx), float64(sy), color.RGBA{R: 0x5c, G: 0x40, B: 0x33, A: 255})
}

func (c *Controls) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, hot bool) {
	bg := color.RGBA{R: 0x5c, G: 0x40, B: 0x33, A: 255}
	fg := color.RGBA{R: 250, G: 243, B: 230, A: 255}
	if hot {
		bg = color.RGBA{R: 0x7a, G: 0x56, B: 0x44, A: 255}
	}
	vector.DrawFilledRect(screen,
		float32(rect.Min.X), float32(rect.Min.Y),
		float32(rect.Dx()), float32(rect.Dy()),
		bg, false)

	w, h := text.Measure(label, c.face, 0)
	x := float64(rect.Min.X) + (float64(rect.Dx())-w)/2
	y := float64(rect.Min.Y) + (float64(rect.Dy())-h)/2
	c.drawText(screen, label, x, y, fg)
}

func (c *Controls) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, c.face, op)
}
