// Package controller owns the live board and drives it forward on a fixed
// tick while running.
//
// A Controller is single-threaded: it takes no locks, and every method,
// including Update and Run, must be called from the same goroutine. Hosts
// such as the ebiten game loop already satisfy this.
package controller

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"life-grid/internal/core"
	"life-grid/pkg/life"
)

// Defaults shared by the controller and the presentation layer.
const (
	DefaultCellSize   = 40
	DefaultMargin     = 60
	DefaultTickPeriod = 100 * time.Millisecond
)

// Options configures a Controller. Zero fields take the defaults above.
type Options struct {
	CellSize   int
	Margin     int
	TickPeriod time.Duration

	// Initial viewport used to size the first board.
	ViewportWidth  int
	ViewportHeight int

	Clock  core.Clock
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.TickPeriod <= 0 {
		o.TickPeriod = DefaultTickPeriod
	}
	if o.Clock == nil {
		o.Clock = core.SystemClock{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Snapshot is the observable controller state after a change.
type Snapshot struct {
	Grid       life.Grid
	Running    bool
	Generation uint64
	Version    uint64
}

// Observer is notified synchronously after every change. Observers run on
// the controller's goroutine and must not call back into the controller.
type Observer interface {
	Changed(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Snapshot)

// Changed calls f(s).
func (f ObserverFunc) Changed(s Snapshot) { f(s) }

type subscription struct {
	id int
	o  Observer
}

// Controller holds the current board and the running flag.
type Controller struct {
	opts   Options
	clock  core.Clock
	logger *log.Logger
	timer  *core.Interval

	grid    life.Grid
	running bool

	viewportW, viewportH int

	generation uint64
	version    uint64

	subs   []subscription
	nextID int
}

// New returns a stopped Controller with an empty board sized to the
// viewport in opts.
func New(opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		opts:      opts,
		clock:     opts.Clock,
		logger:    opts.Logger,
		timer:     core.NewInterval(opts.TickPeriod),
		viewportW: opts.ViewportWidth,
		viewportH: opts.ViewportHeight,
	}
	d := c.viewportDimensions()
	c.grid = life.EmptyGrid(d.Rows, d.Cols)
	c.logger.Debug("controller created", "rows", d.Rows, "cols", d.Cols, "period", opts.TickPeriod)
	return c
}

// Grid returns the current board.
func (c *Controller) Grid() life.Grid { return c.grid }

// Running reports whether ticks are scheduled.
func (c *Controller) Running() bool { return c.running }

// Generation counts ticks since the board was last reset.
func (c *Controller) Generation() uint64 { return c.generation }

// Population counts live cells on the current board.
func (c *Controller) Population() int { return c.grid.Population() }

// Version increases on every change, so pollers can skip redundant redraws.
func (c *Controller) Version() uint64 { return c.version }

// CellSize returns the configured cell size in display units.
func (c *Controller) CellSize() int { return c.opts.CellSize }

// Margin returns the configured margin in display units.
func (c *Controller) Margin() int { return c.opts.Margin }

// Viewport returns the last viewport size seen by New or Resize.
func (c *Controller) Viewport() (int, int) { return c.viewportW, c.viewportH }

// Snapshot captures the current observable state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Grid: c.grid, Running: c.running, Generation: c.generation, Version: c.version}
}

// Subscribe registers o for change notifications. The returned function
// removes it.
func (c *Controller) Subscribe(o Observer) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscription{id: id, o: o})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Start sets running and arms the first tick one period from now. Calling
// Start while running does nothing.
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	c.timer.Arm(c.clock.Now())
	c.logger.Debug("simulation started", "generation", c.generation)
	c.changed()
}

// Stop clears running. A tick already due observes the flag and does
// nothing.
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.halt()
	c.logger.Debug("simulation stopped", "generation", c.generation)
	c.changed()
}

// Toggle flips between running and stopped.
func (c *Controller) Toggle() {
	if c.running {
		c.Stop()
		return
	}
	c.Start()
}

// ToggleCell flips cell (i, j). Coordinates outside the board are ignored.
func (c *Controller) ToggleCell(i, j int) {
	if !c.grid.Dimensions().Contains(i, j) {
		c.logger.Debug("toggle ignored", "row", i, "col", j, "rows", c.grid.Rows(), "cols", c.grid.Cols())
		return
	}
	c.grid = life.ToggleCell(c.grid, i, j)
	c.changed()
}

// Clear resizes the board to the current viewport, empties it and stops.
func (c *Controller) Clear() {
	d := c.viewportDimensions()
	c.reset(life.EmptyGrid(d.Rows, d.Cols))
	c.logger.Debug("board cleared", "rows", c.grid.Rows(), "cols", c.grid.Cols())
}

// ResizeReset installs an empty board of d (clamped to zero) and stops.
func (c *Controller) ResizeReset(d life.Dimensions) {
	d = d.Clamp()
	c.reset(life.EmptyGrid(d.Rows, d.Cols))
	c.logger.Debug("board resized", "rows", d.Rows, "cols", d.Cols)
}

// Resize records a new viewport and resets the board to fit it. A viewport
// equal to the current one is ignored, so hosts may report it every frame.
func (c *Controller) Resize(width, height int) {
	if width == c.viewportW && height == c.viewportH {
		return
	}
	c.viewportW, c.viewportH = width, height
	c.ResizeReset(c.viewportDimensions())
}

// Randomize replaces the board with a seeded random fill of the same size
// and stops.
func (c *Controller) Randomize(seed int64, density float64) {
	c.reset(life.RandomGrid(c.grid.Dimensions(), seed, density))
	c.logger.Debug("board randomized", "seed", seed, "density", density, "population", c.grid.Population())
}

// Noise replaces the board with a seeded Perlin noise fill and stops.
func (c *Controller) Noise(seed int64, threshold float64) {
	c.reset(life.NoiseGrid(c.grid.Dimensions(), seed, threshold))
	c.logger.Debug("board seeded from noise", "seed", seed, "threshold", threshold, "population", c.grid.Population())
}

// Tick runs one scheduled step. It checks running first and returns false
// without installing a board or re-arming when stopped. Otherwise it steps
// the current board, installs the result and arms the next tick one period
// after this one started.
func (c *Controller) Tick() bool {
	if !c.running {
		return false
	}
	now := c.clock.Now()
	c.grid = life.Step(c.grid)
	c.generation++
	c.timer.Arm(now)
	c.changed()
	return true
}

// Update runs a tick if one is due. Hosts call it once per frame.
func (c *Controller) Update() bool {
	if !c.timer.Due(c.clock.Now()) {
		return false
	}
	return c.Tick()
}

// Run polls Update every poll interval until ctx is done and returns the
// context error. It drives hosts without their own frame loop; while Run is
// active no other goroutine may touch the controller.
func (c *Controller) Run(ctx context.Context, poll time.Duration) error {
	if poll <= 0 {
		poll = c.opts.TickPeriod / 4
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Update()
		}
	}
}

func (c *Controller) viewportDimensions() life.Dimensions {
	return life.ComputeDimensions(c.viewportW, c.viewportH, c.opts.CellSize, c.opts.Margin).Clamp()
}

func (c *Controller) halt() {
	c.running = false
	c.timer.Disarm()
}

func (c *Controller) reset(g life.Grid) {
	c.halt()
	c.grid = g
	c.generation = 0
	c.changed()
}

func (c *Controller) changed() {
	c.version++
	if len(c.subs) == 0 {
		return
	}
	s := c.Snapshot()
	for _, sub := range append([]subscription(nil), c.subs...) {
		sub.o.Changed(s)
	}
}
