package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// Values match defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Window: WindowConfig{
			Width:      500,
			Height:     700,
			BoundLimit: 400,
		},
		Physics: PhysicsConfig{
			Gravity:       2400,
			ScrollSpeed:   150,
			JumpImpulse:   700,
			MaxFrameDelta: 0.1,
		},
		Player: PlayerConfig{
			StartX:        0,
			StartY:        0,
			HitboxWidth:   31.2, // 65% of the 48 unit sprite
			HitboxHeight:  31.2,
			MaxClimbAngle: 0.5,
			MaxDiveAngle:  1.5,
		},
		Pipes: PipesConfig{
			Width:         125,
			Gap:           200,
			GapMinY:       -200,
			GapMaxY:       200,
			Spacing:       350,
			FirstDistance: 500,
			SetCount:      3,
		},
		Floor: FloorConfig{
			Thickness:    30,
			SegmentCount: 3,
		},
		Intro: IntroConfig{
			Debounce: 0.3,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
