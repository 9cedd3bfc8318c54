package config

import "image/color"

var (
	ScreenW = 1280
	ScreenH = 800
)

var (
	Background = color.RGBA{12, 14, 22, 255}
	BoltColor  = [3]float32{1.0, 1.0, 1.0}
)

var (
	MaxParticles        = 2048
	ParticleSpawnChance = 0.12
)
