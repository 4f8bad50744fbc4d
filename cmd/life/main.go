//go:build ebiten

package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"life-grid/internal/app"
	"life-grid/internal/controller"
)

func main() {
	cmd := newRootCommand("Play Conway's Game of Life in a window", func(cfg *app.Config, logger *log.Logger) error {
		ctrl := controller.New(cfg.ControllerOptions(logger))
		cfg.ApplyPattern(ctrl)

		game := app.New(ctrl, cfg, logger)

		ebiten.SetWindowTitle("Game of Life")
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

		logger.Info("starting", "rows", ctrl.Grid().Rows(), "cols", ctrl.Grid().Cols(), "pattern", cfg.Pattern)
		if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
			return err
		}
		return nil
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
