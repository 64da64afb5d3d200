package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/game"
	"github.com/sentinent/landing/internal/logging"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "landing:", err)
		os.Exit(2)
	}

	logger, closeLog := logging.OpenDebugLog(cfg.Debug, cfg.DebugLog, os.Stderr)
	defer closeLog()

	g, err := game.New(game.Options{Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, "landing:", err)
		os.Exit(1)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Sentinent - O: soundtrack, Space: pause, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Errorf("main", "run: %v", err)
		fmt.Fprintln(os.Stderr, "landing:", err)
		g.Close()
		os.Exit(1)
	}
}
