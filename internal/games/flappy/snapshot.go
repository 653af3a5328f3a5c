package flappy

import (
	"sort"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// PlayerView is the renderer's copy of the player entity.
type PlayerView struct {
	Transform TransformData
	Velocity  VelocityData
	Hitbox    core.Quad
	Gravity   bool
	Collides  bool
}

// PipeView is one pipe in world space.
type PipeView struct {
	Kind      ObstacleKind
	Box       core.AABB
	GroupX    float64
	GapCenter float64
}

// Snapshot is a read-only view of the world after a tick.
// Floor tiles and pipes are ordered left to right.
type Snapshot struct {
	Tick   uint64
	State  State
	Score  Scoreboard
	Camera core.Vec2
	Player PlayerView
	Floor  []core.AABB
	Pipes  []PipeView

	// Debounced is true once a press would leave Intro or GameOver.
	Debounced bool
}

// Snapshot copies out everything a renderer or HUD needs.
func (w *World) Snapshot() Snapshot {
	p := w.player()
	s := Snapshot{
		Tick:   w.tick,
		State:  w.state,
		Score:  w.score,
		Camera: Transform.Get(w.camera()).Position,
		Player: PlayerView{
			Transform: *Transform.Get(p),
			Velocity:  *Velocity.Get(p),
			Hitbox:    PlayerHitbox(p),
			Gravity:   Gravity.Get(p).Enabled,
			Collides:  Collider.Get(p).Enabled,
		},
		Debounced: w.debounced(),
	}

	queryFloor.Each(w.ecs, func(e *donburi.Entry) {
		s.Floor = append(s.Floor, WorldBox(w.ecs, e))
	})
	sort.Slice(s.Floor, func(i, j int) bool { return s.Floor[i].Min.X < s.Floor[j].Min.X })

	queryPipes.Each(w.ecs, func(e *donburi.Entry) {
		parent := Parent.Get(e).Entity
		if !w.ecs.Valid(parent) {
			return
		}
		ge := w.ecs.Entry(parent)
		s.Pipes = append(s.Pipes, PipeView{
			Kind:      Pipe.Get(e).Kind,
			Box:       WorldBox(w.ecs, e),
			GroupX:    Transform.Get(ge).Position.X,
			GapCenter: ObstacleGroup.Get(ge).GapCenter,
		})
	})
	sort.Slice(s.Pipes, func(i, j int) bool {
		if s.Pipes[i].GroupX != s.Pipes[j].GroupX {
			return s.Pipes[i].GroupX < s.Pipes[j].GroupX
		}
		return s.Pipes[i].Kind < s.Pipes[j].Kind
	})

	return s
}
