package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
	"github.com/iburimskiy/atom-randomizer/internal/config"
	"github.com/iburimskiy/atom-randomizer/internal/game"
	"github.com/iburimskiy/atom-randomizer/internal/shader"
)

func main() {
	settings := config.OpenSettings()
	s := settings.Settings()

	params, err := config.LoadMaterial(s.MaterialPath)
	if err != nil {
		log.Printf("[Main] Falling back to built-in material: %v", err)
		if params, err = config.DefaultMaterial(); err != nil {
			log.Fatalf("[Main] %v", err)
		}
	}

	colors := s.Colors()
	material := shader.NewMaterial(params, colors)

	animator := atom.NewAnimator(nil)
	if err := animator.Initialize(material.Parameters(), colors, s.Flags()); err != nil {
		log.Fatalf("[Main] Failed to initialize animator: %v", err)
	}

	g, err := game.New(animator, material, settings)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Atom Randomizer - Space: randomize, Enter: toggle fields, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
