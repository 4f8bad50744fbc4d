package controller

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"life-grid/pkg/life"
)

var _ = Describe("Controller", func() {
	var (
		clock *manualClock
		c     *Controller
	)

	horizontal := func() life.Grid {
		return life.WithCells(4, 4, life.Cell{Row: 1, Col: 0}, life.Cell{Row: 1, Col: 1}, life.Cell{Row: 1, Col: 2})
	}
	vertical := func() life.Grid {
		return life.WithCells(4, 4, life.Cell{Row: 0, Col: 1}, life.Cell{Row: 1, Col: 1}, life.Cell{Row: 2, Col: 1})
	}
	drawBlinker := func() {
		c.ToggleCell(1, 0)
		c.ToggleCell(1, 1)
		c.ToggleCell(1, 2)
	}

	BeforeEach(func() {
		clock = newManualClock()
		c = New(Options{ViewportWidth: 220, ViewportHeight: 220, Clock: clock})
	})

	It("should start stopped with an empty board sized to the viewport", func() {
		Expect(c.Running()).To(BeFalse())
		Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 4, Cols: 4}))
		Expect(c.Population()).To(BeZero())
		Expect(c.Generation()).To(BeZero())
		Expect(c.CellSize()).To(Equal(DefaultCellSize))
		Expect(c.Margin()).To(Equal(DefaultMargin))
	})

	It("should default the margin when left unset", func() {
		c = New(Options{ViewportWidth: 100, ViewportHeight: 100, Clock: clock})
		Expect(c.Margin()).To(Equal(DefaultMargin))
		Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 1, Cols: 1}))

		c = New(Options{ViewportWidth: 100, ViewportHeight: 100, Margin: -5, Clock: clock})
		Expect(c.Margin()).To(Equal(DefaultMargin))
	})

	It("should size a tiny viewport to an empty board", func() {
		c = New(Options{ViewportWidth: 10, ViewportHeight: 10, Clock: clock})
		Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{}))
	})

	Context("when toggling cells", func() {
		It("should flip a cell and back", func() {
			c.ToggleCell(2, 3)
			Expect(c.Grid().Alive(2, 3)).To(BeTrue())
			c.ToggleCell(2, 3)
			Expect(c.Grid().Alive(2, 3)).To(BeFalse())
		})

		It("should ignore out-of-bounds coordinates", func() {
			before := c.Version()
			c.ToggleCell(4, 0)
			c.ToggleCell(-1, 2)
			Expect(c.Version()).To(Equal(before))
			Expect(c.Population()).To(BeZero())
		})

		It("should ignore stale coordinates after a shrinking resize", func() {
			c.Resize(140, 140)
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 2, Cols: 2}))
			c.ToggleCell(3, 3)
			Expect(c.Population()).To(BeZero())
		})
	})

	Context("when running", func() {
		BeforeEach(func() {
			drawBlinker()
			c.Start()
		})

		It("should not tick before the period elapses", func() {
			clock.Advance(99 * time.Millisecond)
			Expect(c.Update()).To(BeFalse())
			Expect(c.Grid().Equal(horizontal())).To(BeTrue())
		})

		It("should step once per period", func() {
			clock.Advance(DefaultTickPeriod)
			Expect(c.Update()).To(BeTrue())
			Expect(c.Grid().Equal(vertical())).To(BeTrue())
			Expect(c.Generation()).To(Equal(uint64(1)))

			Expect(c.Update()).To(BeFalse())

			clock.Advance(DefaultTickPeriod)
			Expect(c.Update()).To(BeTrue())
			Expect(c.Grid().Equal(horizontal())).To(BeTrue())
			Expect(c.Generation()).To(Equal(uint64(2)))
		})

		It("should not catch up after a stall", func() {
			clock.Advance(350 * time.Millisecond)
			Expect(c.Update()).To(BeTrue())
			Expect(c.Update()).To(BeFalse())
			Expect(c.Generation()).To(Equal(uint64(1)))

			clock.Advance(DefaultTickPeriod)
			Expect(c.Update()).To(BeTrue())
		})

		It("should ignore a second Start", func() {
			version := c.Version()
			c.Start()
			Expect(c.Version()).To(Equal(version))
			Expect(c.Running()).To(BeTrue())
		})

		It("should let cell toggles interleave with ticks", func() {
			clock.Advance(DefaultTickPeriod)
			c.Update()
			c.ToggleCell(3, 3)
			Expect(c.Grid().Alive(3, 3)).To(BeTrue())
			Expect(c.Running()).To(BeTrue())
		})

		It("should not install a board from a tick that fires after Stop", func() {
			clock.Advance(DefaultTickPeriod)
			c.Stop()
			before := c.Grid()
			version := c.Version()

			Expect(c.Tick()).To(BeFalse())
			Expect(c.Update()).To(BeFalse())

			clock.Advance(10 * DefaultTickPeriod)
			Expect(c.Update()).To(BeFalse())
			Expect(c.Grid().Equal(before)).To(BeTrue())
			Expect(c.Version()).To(Equal(version))
			Expect(c.Generation()).To(BeZero())
		})

		It("should resume from the latest board after a restart", func() {
			clock.Advance(DefaultTickPeriod)
			c.Update()
			c.Stop()
			c.Start()
			clock.Advance(DefaultTickPeriod)
			Expect(c.Update()).To(BeTrue())
			Expect(c.Grid().Equal(horizontal())).To(BeTrue())
		})

		It("should flip state on Toggle", func() {
			c.Toggle()
			Expect(c.Running()).To(BeFalse())
			c.Toggle()
			Expect(c.Running()).To(BeTrue())
		})
	})

	Context("when clearing", func() {
		It("should empty the board and stop", func() {
			drawBlinker()
			c.Start()
			clock.Advance(DefaultTickPeriod)
			c.Update()

			c.Clear()

			Expect(c.Running()).To(BeFalse())
			Expect(c.Population()).To(BeZero())
			Expect(c.Generation()).To(BeZero())
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 4, Cols: 4}))

			clock.Advance(DefaultTickPeriod)
			Expect(c.Update()).To(BeFalse())
		})

		It("should size the board to the latest viewport", func() {
			c.Resize(380, 300)
			c.ToggleCell(0, 0)
			c.Clear()
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 6, Cols: 8}))
			Expect(c.Population()).To(BeZero())
		})

		It("should be safe on a stopped empty board", func() {
			c.Clear()
			Expect(c.Running()).To(BeFalse())
			Expect(c.Population()).To(BeZero())
		})
	})

	Context("when resizing", func() {
		It("should install an empty board and stop", func() {
			drawBlinker()
			c.Start()
			c.ResizeReset(life.Dimensions{Rows: 3, Cols: 7})
			Expect(c.Running()).To(BeFalse())
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 3, Cols: 7}))
			Expect(c.Population()).To(BeZero())
		})

		It("should clamp negative dimensions", func() {
			c.ResizeReset(life.Dimensions{Rows: -2, Cols: 5})
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 0, Cols: 5}))
		})

		It("should run harmlessly on a degenerate board", func() {
			c.ResizeReset(life.Dimensions{})
			c.ToggleCell(0, 0)
			c.Start()
			clock.Advance(DefaultTickPeriod)
			Expect(c.Update()).To(BeTrue())
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{}))
		})

		It("should ignore a repeated viewport", func() {
			c.ToggleCell(0, 0)
			version := c.Version()
			c.Resize(220, 220)
			Expect(c.Version()).To(Equal(version))
			Expect(c.Population()).To(Equal(1))
		})

		It("should recompute dimensions for a new viewport", func() {
			c.Resize(1300, 800)
			w, h := c.Viewport()
			Expect([]int{w, h}).To(Equal([]int{1300, 800}))
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 18, Cols: 31}))
		})
	})

	Context("when seeding", func() {
		It("should randomize deterministically and stop", func() {
			c.Start()
			c.Randomize(3, 0.5)
			first := c.Grid()
			Expect(c.Running()).To(BeFalse())
			Expect(first.Dimensions()).To(Equal(life.Dimensions{Rows: 4, Cols: 4}))

			c.Randomize(3, 0.5)
			Expect(c.Grid().Equal(first)).To(BeTrue())
		})

		It("should seed from noise", func() {
			c.Noise(11, 5)
			Expect(c.Population()).To(BeZero())
			Expect(c.Grid().Dimensions()).To(Equal(life.Dimensions{Rows: 4, Cols: 4}))
		})
	})

	Context("with observers", func() {
		var mockCtrl *gomock.Controller

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should notify every change", func() {
			observer := NewMockObserver(mockCtrl)
			var seen []Snapshot
			observer.EXPECT().
				Changed(gomock.Any()).
				Do(func(s Snapshot) { seen = append(seen, s) }).
				Times(3)

			c.Subscribe(observer)
			c.ToggleCell(0, 0)
			c.Start()
			clock.Advance(DefaultTickPeriod)
			c.Update()

			Expect(seen).To(HaveLen(3))
			Expect(seen[0].Grid.Alive(0, 0)).To(BeTrue())
			Expect(seen[0].Running).To(BeFalse())
			Expect(seen[1].Running).To(BeTrue())
			Expect(seen[2].Generation).To(Equal(uint64(1)))
			Expect(seen[2].Grid.Population()).To(BeZero())
			Expect(seen[2].Version).To(Equal(c.Version()))
		})

		It("should not notify no-op operations", func() {
			observer := NewMockObserver(mockCtrl)
			observer.EXPECT().Changed(gomock.Any()).Times(0)

			c.Subscribe(observer)
			c.Stop()
			c.ToggleCell(10, 10)
			c.Resize(220, 220)
			Expect(c.Tick()).To(BeFalse())
		})

		It("should stop notifying after cancel", func() {
			observer := NewMockObserver(mockCtrl)
			observer.EXPECT().Changed(gomock.Any()).Times(1)

			cancel := c.Subscribe(observer)
			c.ToggleCell(0, 0)
			cancel()
			c.ToggleCell(0, 0)
		})

		It("should accept plain functions", func() {
			count := 0
			c.Subscribe(ObserverFunc(func(Snapshot) { count++ }))
			c.Clear()
			Expect(count).To(Equal(1))
		})
	})

	It("should drive ticks from Run until the context ends", func() {
		c = New(Options{ViewportWidth: 220, ViewportHeight: 220, TickPeriod: 5 * time.Millisecond})
		drawBlinker()
		c.Start()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		Expect(c.Run(ctx, time.Millisecond)).To(MatchError(context.DeadlineExceeded))
		Expect(c.Generation()).To(BeNumerically(">", 0))
		Expect(c.Population()).To(Equal(3))
	})
})
