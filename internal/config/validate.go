package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks the configuration for values the simulation cannot run
// with. All problems are reported together.
func (c FlappyConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Window.BoundLimit < 0 {
		bad("window.bound_limit must not be negative, got %v", c.Window.BoundLimit)
	}
	if c.Physics.Gravity < 0 {
		bad("physics.gravity must not be negative, got %v", c.Physics.Gravity)
	}
	if c.Physics.ScrollSpeed <= 0 {
		bad("physics.scroll_speed must be positive, got %v", c.Physics.ScrollSpeed)
	}
	if c.Physics.MaxFrameDelta <= 0 {
		bad("physics.max_frame_delta must be positive, got %v", c.Physics.MaxFrameDelta)
	}
	if c.Player.HitboxWidth <= 0 || c.Player.HitboxHeight <= 0 {
		bad("player hitbox must be positive, got %vx%v", c.Player.HitboxWidth, c.Player.HitboxHeight)
	}
	if c.Player.MaxClimbAngle < 0 || c.Player.MaxDiveAngle < 0 {
		bad("player angle limits must not be negative")
	}
	if c.Pipes.Width <= 0 || c.Pipes.Gap <= 0 || c.Pipes.Spacing <= 0 {
		bad("pipes width, gap and spacing must be positive")
	}
	if c.Pipes.SetCount < 1 {
		bad("pipes.set_count must be at least 1, got %d", c.Pipes.SetCount)
	}
	if c.Pipes.GapMinY > c.Pipes.GapMaxY {
		bad("pipes.gap_min_y (%v) is greater than pipes.gap_max_y (%v)", c.Pipes.GapMinY, c.Pipes.GapMaxY)
	}
	if c.Floor.Thickness <= 0 {
		bad("floor.thickness must be positive, got %v", c.Floor.Thickness)
	}
	if c.Floor.SegmentCount < 1 {
		bad("floor.segment_count must be at least 1, got %d", c.Floor.SegmentCount)
	}
	if c.Intro.Debounce < 0 {
		bad("intro.debounce must not be negative, got %v", c.Intro.Debounce)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	// Pipes must keep a positive height for every reachable gap center.
	reach := c.Window.Height/2 + c.Window.BoundLimit - c.Pipes.Gap/2
	if c.Pipes.GapMaxY >= reach || -c.Pipes.GapMinY >= reach {
		bad("pipe gap range [%v, %v] leaves no room for pipes", c.Pipes.GapMinY, c.Pipes.GapMaxY)
	}

	// Pools must cover the window plus slack at the largest per-tick step,
	// otherwise holes open up in the visible geometry.
	step := c.MaxScrollStep()
	floorSpan := float64(c.Floor.SegmentCount) * c.Window.Width
	if need := 2*c.Window.Width + c.Window.BoundLimit + step; floorSpan < need {
		bad("floor pool spans %v units, needs at least %v", floorSpan, need)
	}
	pipeSpan := float64(c.Pipes.SetCount) * c.Pipes.Spacing
	if need := c.Window.Width + c.Pipes.Width + c.Window.BoundLimit + step; pipeSpan < need {
		bad("pipe pool spans %v units, needs at least %v", pipeSpan, need)
	}

	return errors.Join(errs...)
}
