package main

import (
	"errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/ionized-visualizer/internal/config"
	"github.com/iburimskiy/ionized-visualizer/internal/game"
)

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("Ionized - U: open file, Space: play/pause, N/B: scenes, H: hotkeys")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(opts)
	defer g.Close()

	if opts.File != "" {
		if err := g.Load(opts.File); err != nil {
			log.Printf("[main] %v", err)
		}
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[main] %v", err)
	}
}
