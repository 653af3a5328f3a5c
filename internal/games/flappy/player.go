package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// controlPlayer applies a flap and points the player along its flight path.
// It runs before integration.
func (w *World) controlPlayer(jump bool) {
	if w.state != StatePlaying && w.state != StateGameOver {
		return
	}

	p := w.player()
	v := Velocity.Get(p)
	if jump && w.state == StatePlaying {
		v.Y = w.cfg.Physics.JumpImpulse
	}
	Transform.Get(p).Rotation = w.pitch(v.Y)
}

// pitch maps a vertical speed to a rotation. Forward speed is taken to be the
// scroll speed so the angle stays meaningful after the player stops.
func (w *World) pitch(vy float64) float64 {
	pc := w.cfg.Player
	return core.ClampF(math.Atan2(vy, w.cfg.Physics.ScrollSpeed), -pc.MaxDiveAngle, pc.MaxClimbAngle)
}

// limitPlayer keeps the player below the fly ceiling and, after a crash,
// lets it settle on the floor.
func (w *World) limitPlayer() {
	if w.state != StatePlaying && w.state != StateGameOver {
		return
	}

	p := w.player()
	t := Transform.Get(p)
	if ceiling := w.cfg.MaxFlyHeight(); t.Position.Y > ceiling {
		t.Position.Y = ceiling
	}

	if w.state != StateGameOver {
		return
	}
	rest := w.cfg.FloorTop() + Collider.Get(p).HalfExtents.Y
	if t.Position.Y < rest {
		t.Position.Y = rest
		v := Velocity.Get(p)
		if v.Y < 0 {
			v.Y = 0
		}
	}
}
