package config

import "time"

const (
	AppName = "atom_randomizer"

	WindowWidth  = 1024
	WindowHeight = 640

	// Audio tap and onset detection
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	OnsetWindow     = 1024
	OnsetRatio      = 1.8
	OnsetFloor      = 0.02
	OnsetCooldown   = 750 * time.Millisecond

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 32
	ButtonX      = 20
	ButtonY      = 40

	// Renderer color cycling for randomized channels
	ColorShiftSpeed = 0.05
	CycleSaturation = 0.8
	CycleValue      = 0.9

	// Inspector step for the random factor keys
	RandomFactorStep = 0.1

	// HUD
	GaugeWidth  = 200
	GaugeHeight = 8
	GaugeX      = 20
	GaugeY      = 96
	GaugeGap    = 18
)
