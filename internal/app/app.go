//go:build ebiten

package app

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"life-grid/internal/controller"
	"life-grid/internal/render"
	"life-grid/internal/ui"
)

// Game adapts a controller to the ebiten.Game interface. ebiten calls
// Update, Draw and Layout from one goroutine, which is the single owner the
// controller requires.
type Game struct {
	ctrl     *controller.Controller
	cfg      *Config
	logger   *log.Logger
	painter  *render.GridPainter
	controls *ui.Controls
	palette  render.Palette

	outsideW, outsideH int
	sized              bool
	hover              ui.Target
}

// New constructs a Game for the provided controller.
func New(ctrl *controller.Controller, cfg *Config, logger *log.Logger) *Game {
	palette := render.DefaultPalette()
	return &Game{
		ctrl:     ctrl,
		cfg:      cfg,
		logger:   logger,
		painter:  render.NewGridPainter(palette),
		controls: ui.NewControls(),
		palette:  palette,
	}
}

func (g *Game) layout() ui.Layout {
	return ui.NewLayout(g.ctrl.CellSize(), g.ctrl.Margin(), g.ctrl.Grid().Dimensions())
}

// Update handles input and advances the simulation when a tick is due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.syncViewport()

	mx, my := ebiten.CursorPosition()
	target, cell := g.layout().Hit(mx, my)
	g.hover = target
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch target {
		case ui.TargetRun:
			g.ctrl.Toggle()
		case ui.TargetClear:
			g.ctrl.Clear()
		case ui.TargetCell:
			g.ctrl.ToggleCell(cell.Row, cell.Col)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Randomize(time.Now().UnixNano(), g.cfg.Density)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.ctrl.Noise(time.Now().UnixNano(), g.cfg.Threshold)
	}

	g.ctrl.Update()
	return nil
}

// syncViewport forwards window size changes to the controller. The first
// reported size only re-seeds the configured pattern when it differs from
// the configured window.
func (g *Game) syncViewport() {
	if g.outsideW == 0 && g.outsideH == 0 {
		return
	}
	w, h := g.ctrl.Viewport()
	if w == g.outsideW && h == g.outsideH {
		g.sized = true
		return
	}
	g.ctrl.Resize(g.outsideW, g.outsideH)
	if !g.sized {
		g.sized = true
		g.cfg.ApplyPattern(g.ctrl)
		return
	}
	g.logger.Info("viewport resized", "width", g.outsideW, "height", g.outsideH,
		"rows", g.ctrl.Grid().Rows(), "cols", g.ctrl.Grid().Cols())
}

// Draw renders the current board and the button bar.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)
	l := g.layout()
	ox, oy := l.Origin()
	g.painter.Draw(screen, g.ctrl.Grid(), float64(ox), float64(oy), l.CellSize)
	g.controls.Draw(screen, l, g.ctrl.Snapshot(), g.hover)
}

// Layout records the window size and uses it as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
