package render

import (
	"bufio"
	"fmt"
	"io"

	"life-grid/internal/controller"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearScreen = "\033[H\033[2J"
)

// Terminal draws snapshots as text blocks.
type Terminal struct {
	w    io.Writer
	wipe bool
}

// NewTerminal writes frames to w. When wipe is set each frame first homes
// the cursor and clears the screen.
func NewTerminal(w io.Writer, wipe bool) *Terminal {
	return &Terminal{w: w, wipe: wipe}
}

// Display renders one frame with a status line.
func (t *Terminal) Display(s controller.Snapshot) error {
	bw := bufio.NewWriter(t.w)
	if t.wipe {
		bw.WriteString(clearScreen)
	}
	state := "stopped"
	if s.Running {
		state = "running"
	}
	fmt.Fprintf(bw, "Gen: %d | Living: %d | %dx%d | %s\n",
		s.Generation, s.Grid.Population(), s.Grid.Rows(), s.Grid.Cols(), state)
	for i := 0; i < s.Grid.Rows(); i++ {
		for j := 0; j < s.Grid.Cols(); j++ {
			if s.Grid.Alive(i, j) {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
