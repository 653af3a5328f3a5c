package flappy

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Draw order of the layers.
const (
	zFloor  = 0
	zPipe   = 1
	zPlayer = 2
)

// gapResolution is the number of steps the gap range is divided into.
// Drawing k in [0, gapResolution] keeps both ends of the range reachable.
const gapResolution = 1 << 53

func (w *World) cameraStart() core.Vec2 {
	return core.V(0, 0)
}

func (w *World) spawnCamera() {
	e := w.ecs.Entry(w.ecs.Create(CameraTag, Transform))
	Transform.SetValue(e, TransformData{Position: w.cameraStart(), Scale: core.V(1, 1)})
}

func (w *World) spawnPlayer() {
	e := w.ecs.Entry(w.ecs.Create(PlayerTag, Transform, Velocity, Gravity, Collider))
	w.resetPlayer(e)
}

// resetPlayer restores the state a run starts from: at the start point, at
// rest, level, collidable and unaffected by gravity.
func (w *World) resetPlayer(e *donburi.Entry) {
	pc := w.cfg.Player
	Transform.SetValue(e, TransformData{
		Position: core.V(pc.StartX, pc.StartY),
		Z:        zPlayer,
		Scale:    core.V(1, 1),
	})
	Velocity.SetValue(e, VelocityData{})
	Gravity.SetValue(e, GravityData{Enabled: false})
	Collider.SetValue(e, ColliderData{
		HalfExtents: core.V(pc.HitboxWidth/2, pc.HitboxHeight/2),
		Enabled:     true,
		Kind:        ColliderPlayer,
	})
}

// spawnFloor lays the floor tiles edge to edge. The first tile starts one
// bound limit left of the window so the trailing slack is covered from the
// first tick.
func (w *World) spawnFloor() {
	width := w.cfg.Window.Width
	for i := 0; i < w.cfg.Floor.SegmentCount; i++ {
		e := w.ecs.Entry(w.ecs.Create(FloorSegment, Transform, Collider))
		FloorSegment.SetValue(e, FloorSegmentData{Index: i})
		Transform.SetValue(e, TransformData{
			Position: core.V(-w.cfg.Window.BoundLimit+float64(i)*width, w.cfg.FloorY()),
			Z:        zFloor,
			Scale:    core.V(1, 1),
		})
		Collider.SetValue(e, ColliderData{
			HalfExtents: core.V(width/2, w.cfg.Floor.Thickness/2),
			Enabled:     true,
			Kind:        ColliderFloor,
		})
	}
}

func (w *World) spawnPipes() {
	pc := w.cfg.Pipes
	for i := 0; i < pc.SetCount; i++ {
		w.spawnGroup(pc.FirstDistance+float64(i)*pc.Spacing, w.drawGap())
	}
}

// drawGap returns a gap center drawn uniformly from the closed configured range.
func (w *World) drawGap() float64 {
	lo, hi := w.cfg.Pipes.GapMinY, w.cfg.Pipes.GapMaxY
	k := w.rng.Int63n(gapResolution + 1)
	return lo + (hi-lo)*float64(k)/gapResolution
}

// spawnGroup creates a pipe set at x and its two children.
func (w *World) spawnGroup(x, gapCenter float64) donburi.Entity {
	group := w.ecs.Create(ObstacleGroup, Transform)
	top := w.spawnPipe(group, PipeTop, gapCenter)
	bottom := w.spawnPipe(group, PipeBottom, gapCenter)

	ge := w.ecs.Entry(group)
	ObstacleGroup.SetValue(ge, ObstacleGroupData{GapCenter: gapCenter, Top: top, Bottom: bottom})
	Transform.SetValue(ge, TransformData{Position: core.V(x, 0), Z: zPipe, Scale: core.V(1, 1)})
	return group
}

func (w *World) spawnPipe(group donburi.Entity, kind ObstacleKind, gapCenter float64) donburi.Entity {
	center, size := PipeLayout(kind, gapCenter, w.cfg)

	e := w.ecs.Entry(w.ecs.Create(Pipe, Parent, Transform, Collider))
	Pipe.SetValue(e, PipeData{Kind: kind})
	Parent.SetValue(e, ParentData{Entity: group})
	Transform.SetValue(e, TransformData{Position: center, Z: zPipe, Scale: core.V(1, 1)})
	Collider.SetValue(e, ColliderData{
		HalfExtents: size.Scale(0.5),
		Enabled:     true,
		Kind:        ColliderPipe,
	})
	return e.Entity()
}

// despawnGroup removes a pipe set and both of its children.
func (w *World) despawnGroup(group donburi.Entity) {
	g := ObstacleGroup.Get(w.ecs.Entry(group))
	for _, child := range []donburi.Entity{g.Top, g.Bottom} {
		if w.ecs.Valid(child) {
			w.ecs.Remove(child)
		}
	}
	w.ecs.Remove(group)
}

// PipeLayout returns the center, relative to its group, and the size of a
// pipe framing a gap centered at gapCenter. Pipes reach past the window by
// the bound limit so their far ends are never visible.
func PipeLayout(kind ObstacleKind, gapCenter float64, cfg config.FlappyConfig) (center, size core.Vec2) {
	reach := cfg.Window.Height/2 + cfg.Window.BoundLimit
	half := cfg.Pipes.Gap / 2

	switch kind {
	case PipeTop:
		bottom := gapCenter + half
		h := reach - bottom
		return core.V(0, bottom+h/2), core.V(cfg.Pipes.Width, h)
	default:
		top := gapCenter - half
		h := top + reach
		return core.V(0, top-h/2), core.V(cfg.Pipes.Width, h)
	}
}
