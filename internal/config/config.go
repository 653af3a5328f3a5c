// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the flappy simulation.
package config

// FlappyConfig contains all tuning for the side-scroller.
// Units are world units (the logical window is Window.Width x Window.Height,
// origin at its center, Y up) and seconds.
type FlappyConfig struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Pipes   PipesConfig   `yaml:"pipes"`
	Floor   FloorConfig   `yaml:"floor"`
	Intro   IntroConfig   `yaml:"intro"`
}

// WindowConfig defines the logical viewport.
type WindowConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// BoundLimit is how far geometry may extend past the window before it is
	// recycled, and how high above the window the player may fly.
	BoundLimit float64 `yaml:"bound_limit"`
}

// PhysicsConfig defines motion parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`         // Downward acceleration, units/s²
	ScrollSpeed   float64 `yaml:"scroll_speed"`    // Camera and forward speed, units/s
	JumpImpulse   float64 `yaml:"jump_impulse"`    // Vertical speed set by a jump, units/s
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // Host cap on a single tick's dt, seconds
}

// PlayerConfig defines the player's hitbox and pitch limits.
type PlayerConfig struct {
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	HitboxWidth   float64 `yaml:"hitbox_width"`
	HitboxHeight  float64 `yaml:"hitbox_height"`
	MaxClimbAngle float64 `yaml:"max_climb_angle"` // radians, nose up
	MaxDiveAngle  float64 `yaml:"max_dive_angle"`  // radians, nose down
}

// PipesConfig defines the obstacle sets.
type PipesConfig struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`
	GapMinY       float64 `yaml:"gap_min_y"`
	GapMaxY       float64 `yaml:"gap_max_y"`
	Spacing       float64 `yaml:"spacing"`
	FirstDistance float64 `yaml:"first_distance"`
	SetCount      int     `yaml:"set_count"`
}

// FloorConfig defines the recycled ground tiles.
type FloorConfig struct {
	Thickness    float64 `yaml:"thickness"`
	SegmentCount int     `yaml:"segment_count"`
}

// IntroConfig defines menu-state behavior.
type IntroConfig struct {
	Debounce float64 `yaml:"debounce"` // seconds before a jump press is accepted
}

// FloorY returns the center height of the floor tiles.
func (c FlappyConfig) FloorY() float64 {
	return -c.Window.Height/2 + c.Floor.Thickness/2
}

// FloorTop returns the height of the floor's upper surface.
func (c FlappyConfig) FloorTop() float64 {
	return -c.Window.Height/2 + c.Floor.Thickness
}

// MaxFlyHeight returns the highest y the player may reach.
func (c FlappyConfig) MaxFlyHeight() float64 {
	return c.Window.Height/2 + c.Window.BoundLimit
}

// MaxScrollStep returns the farthest the camera can move in one tick.
func (c FlappyConfig) MaxScrollStep() float64 {
	return c.Physics.ScrollSpeed * c.Physics.MaxFrameDelta
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset adjusts gap size and scroll speed for a difficulty preset.
// Normal and unknown presets leave the config untouched.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Pipes.Gap *= 1.2
		cfg.Physics.ScrollSpeed *= 0.85
	case DifficultyHard:
		cfg.Pipes.Gap *= 0.85
		cfg.Physics.ScrollSpeed *= 1.2
	}
}
