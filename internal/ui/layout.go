package ui

import (
	"image"

	"life-grid/pkg/life"
)

// Button labels. The run button shows the action it will perform.
const (
	LabelStart = "Start Simulation"
	LabelStop  = "Stop"
	LabelClear = "Clear"
)

// Target identifies what a pointer position lands on.
type Target int

const (
	TargetNone Target = iota
	TargetRun
	TargetClear
	TargetCell
)

const (
	glyphWidth    = 7
	buttonPadding = 8
	buttonHeight  = 24
	buttonGap     = 10
	barTop        = 8
)

// Layout places the button bar and the board inside the viewport. The top
// three quarters of the margin hold the buttons; the board starts below it,
// inset by half the margin horizontally.
type Layout struct {
	CellSize int
	Margin   int
	Rows     int
	Cols     int
}

// NewLayout builds a Layout for a board of d drawn with the given cell size
// and margin.
func NewLayout(cellSize, margin int, d life.Dimensions) Layout {
	d = d.Clamp()
	return Layout{CellSize: cellSize, Margin: margin, Rows: d.Rows, Cols: d.Cols}
}

// Origin is the top-left corner of the board.
func (l Layout) Origin() (int, int) {
	return l.Margin / 2, l.Margin * 3 / 4
}

// Board is the rectangle covered by cells.
func (l Layout) Board() image.Rectangle {
	x, y := l.Origin()
	return image.Rect(x, y, x+l.Cols*l.CellSize, y+l.Rows*l.CellSize)
}

func labelWidth(label string) int {
	return len(label)*glyphWidth + 2*buttonPadding
}

// RunButton is sized for the longer of its two labels so it does not jump
// when the state flips.
func (l Layout) RunButton() image.Rectangle {
	x, _ := l.Origin()
	w := max(labelWidth(LabelStart), labelWidth(LabelStop))
	return image.Rect(x, barTop, x+w, barTop+buttonHeight)
}

// ClearButton sits to the right of the run button.
func (l Layout) ClearButton() image.Rectangle {
	run := l.RunButton()
	x := run.Max.X + buttonGap
	return image.Rect(x, barTop, x+labelWidth(LabelClear), barTop+buttonHeight)
}

// StatusOrigin is where the status line starts.
func (l Layout) StatusOrigin() (int, int) {
	return l.ClearButton().Max.X + 2*buttonGap, barTop + (buttonHeight-13)/2
}

// CellAt maps a pointer position to board coordinates.
func (l Layout) CellAt(px, py int) (life.Cell, bool) {
	if l.CellSize <= 0 {
		return life.Cell{}, false
	}
	board := l.Board()
	if !pointInRect(px, py, board) {
		return life.Cell{}, false
	}
	return life.Cell{
		Row: (py - board.Min.Y) / l.CellSize,
		Col: (px - board.Min.X) / l.CellSize,
	}, true
}

// Hit resolves a pointer position to a button or a cell.
func (l Layout) Hit(px, py int) (Target, life.Cell) {
	if pointInRect(px, py, l.RunButton()) {
		return TargetRun, life.Cell{}
	}
	if pointInRect(px, py, l.ClearButton()) {
		return TargetClear, life.Cell{}
	}
	if c, ok := l.CellAt(px, py); ok {
		return TargetCell, c
	}
	return TargetNone, life.Cell{}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
