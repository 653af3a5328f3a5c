package flappy

import (
	"sort"

	"github.com/yohamta/donburi"
)

// scroll advances the camera and recycles geometry that fell behind it.
// Floor tiles move in place; pipe sets are replaced through the command
// buffer and take part in collisions from the next tick.
func (w *World) scroll(dt float64) {
	cam := Transform.Get(w.camera())
	cam.Position.X += w.cfg.Physics.ScrollSpeed * dt

	left := cam.Position.X - w.cfg.Window.Width/2
	slack := w.cfg.Window.BoundLimit

	tile := w.cfg.Window.Width
	loop := tile * float64(w.cfg.Floor.SegmentCount)
	queryFloor.Each(w.ecs, func(e *donburi.Entry) {
		t := Transform.Get(e)
		for t.Position.X+tile/2+slack < left {
			t.Position.X += loop
		}
	})

	type expired struct {
		group donburi.Entity
		x     float64
	}
	var gone []expired
	halfPipe := w.cfg.Pipes.Width / 2
	queryGroups.Each(w.ecs, func(e *donburi.Entry) {
		x := Transform.Get(e).Position.X
		if x+halfPipe+slack < left {
			gone = append(gone, expired{group: e.Entity(), x: x})
		}
	})

	// Recycle left to right so gap draws follow world order.
	sort.Slice(gone, func(i, j int) bool { return gone[i].x < gone[j].x })
	span := w.cfg.Pipes.Spacing * float64(w.cfg.Pipes.SetCount)
	for _, g := range gone {
		w.queue(recycleCmd(g.group, g.x+span))
	}
}
