package flappy

import (
	"github.com/yohamta/donburi"
)

// applyGravity accelerates every gravity-enabled entity downward.
func (w *World) applyGravity(dt float64) {
	g := w.cfg.Physics.Gravity
	queryGravity.Each(w.ecs, func(e *donburi.Entry) {
		if !Gravity.Get(e).Enabled {
			return
		}
		Velocity.Get(e).Y -= g * dt
	})
}

// integrate moves every entity with a velocity. No clamping happens here.
func (w *World) integrate(dt float64) {
	queryMoving.Each(w.ecs, func(e *donburi.Entry) {
		v := Velocity.Get(e)
		t := Transform.Get(e)
		t.Position.X += v.X * dt
		t.Position.Y += v.Y * dt
	})
}
