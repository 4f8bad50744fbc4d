//go:build !ebiten

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"life-grid/internal/app"
	"life-grid/internal/controller"
	"life-grid/internal/core"
	"life-grid/internal/render"
)

// Without the ebiten tag the board runs in the terminal. The window size
// flags are read as a viewport in pixels, so the defaults give the same
// board as the GUI.
func main() {
	cmd := newRootCommand("Play Conway's Game of Life in the terminal (build with -tags ebiten for the GUI)", func(cfg *app.Config, logger *log.Logger) error {
		if cfg.Pattern == app.PatternEmpty {
			logger.Warn("an empty board never changes; try --pattern=random or --pattern=noise")
		}

		ctrl := controller.New(cfg.ControllerOptions(logger))
		cfg.ApplyPattern(ctrl)

		term := render.NewTerminal(os.Stdout, true)
		limiter := core.NewFixedStep(cfg.FPS, core.SystemClock{})
		ctrl.Subscribe(controller.ObserverFunc(func(s controller.Snapshot) {
			if !limiter.ShouldStep() {
				return
			}
			if err := term.Display(s); err != nil {
				logger.Error("render failed", "err", err)
			}
		}))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ctrl.Start()
		err := ctrl.Run(ctx, 10*time.Millisecond)
		logger.Info("stopped", "generations", ctrl.Generation(), "population", ctrl.Population())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
