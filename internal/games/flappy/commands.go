package flappy

import (
	"github.com/yohamta/donburi"
)

type commandKind int

const (
	cmdTransition commandKind = iota
	cmdRecycleGroup
)

// command is a structural change deferred to the end of the tick.
type command struct {
	kind  commandKind
	event Event
	group donburi.Entity
	x     float64
}

func transitionCmd(e Event) command {
	return command{kind: cmdTransition, event: e}
}

func recycleCmd(group donburi.Entity, x float64) command {
	return command{kind: cmdRecycleGroup, group: group, x: x}
}

func (w *World) queue(c command) {
	w.pending = append(w.pending, c)
}

// flush applies queued commands in the order they were issued.
func (w *World) flush() {
	cmds := w.pending
	w.pending = nil

	for _, c := range cmds {
		switch c.kind {
		case cmdTransition:
			w.dispatch(c.event)
		case cmdRecycleGroup:
			if !w.ecs.Valid(c.group) {
				continue
			}
			w.despawnGroup(c.group)
			w.spawnGroup(c.x, w.drawGap())
		}
	}
}

// dispatch feeds an event to the state machine and runs the on-enter effects
// of the resulting state.
func (w *World) dispatch(e Event) {
	from := w.state
	if !from.Valid() {
		w.logger.Warn("ignoring event in unknown state", "state", int(from), "event", e)
		return
	}

	to := Transition(from, e)
	if to == from {
		return
	}

	w.state = to
	w.sinceEnter = 0
	w.enter(to)

	w.applied = append(w.applied, TransitionRecord{From: from, To: to, Event: e})
	w.logger.Debug("state transition", "from", from, "to", to, "event", e, "tick", w.tick)
}

func (w *World) enter(s State) {
	switch s {
	case StatePlaying:
		p := w.player()
		Gravity.Get(p).Enabled = true
		Velocity.SetValue(p, VelocityData{X: w.cfg.Physics.ScrollSpeed})

	case StateGameOver:
		if w.score.Current > w.score.Best {
			w.score.Best = w.score.Current
		}
		Velocity.Get(w.player()).X = 0

	case StateCleanup:
		w.resetWorld()
	}
}

// resetWorld rebuilds the scrolling geometry and puts the player and camera
// back where a run starts. The best score survives.
func (w *World) resetWorld() {
	var doomed []donburi.Entity
	queryFloor.Each(w.ecs, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	queryGroups.Each(w.ecs, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	for _, e := range doomed {
		if w.isGroup(e) {
			w.despawnGroup(e)
			continue
		}
		w.ecs.Remove(e)
	}

	Transform.Get(w.camera()).Position = w.cameraStart()
	w.resetPlayer(w.player())
	w.spawnFloor()
	w.spawnPipes()
	w.score.Current = 0
}

func (w *World) isGroup(e donburi.Entity) bool {
	return w.ecs.Valid(e) && w.ecs.Entry(e).HasComponent(ObstacleGroup)
}
