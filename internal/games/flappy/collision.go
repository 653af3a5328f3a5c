package flappy

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// WorldBox returns the world-space box of a floor tile or pipe collider.
// Pipe positions are offset by their group's position.
func WorldBox(world donburi.World, e *donburi.Entry) core.AABB {
	t := Transform.Get(e)
	c := Collider.Get(e)

	center := t.Position.Add(c.Offset)
	if e.HasComponent(Parent) {
		parent := Parent.Get(e).Entity
		if world.Valid(parent) {
			center = center.Add(Transform.Get(world.Entry(parent)).Position)
		}
	}
	return core.NewAABB(center, c.HalfExtents)
}

// PlayerHitbox returns the player's collider rotated with its transform.
func PlayerHitbox(e *donburi.Entry) core.Quad {
	t := Transform.Get(e)
	c := Collider.Get(e)
	center := t.Position.Add(c.Offset.Rotate(t.Rotation))
	return core.RotatedBox(center, c.HalfExtents, t.Rotation)
}

// checkCollisions ends the run on the first overlap between the player and
// any solid collider, then disables the player's collider.
func (w *World) checkCollisions() {
	p := w.player()
	pc := Collider.Get(p)
	if !pc.Enabled {
		return
	}
	hitbox := PlayerHitbox(p)

	var hit *donburi.Entry
	test := func(e *donburi.Entry) {
		if hit != nil || !Collider.Get(e).Enabled {
			return
		}
		if hitbox.OverlapsAABB(WorldBox(w.ecs, e)) {
			hit = e
		}
	}
	queryFloor.Each(w.ecs, test)
	queryPipes.Each(w.ecs, test)

	if hit == nil {
		return
	}

	pc.Enabled = false
	w.queue(transitionCmd(EventCrash))
	w.logger.Debug("player hit", "kind", Collider.Get(hit).Kind, "tick", w.tick)
}
